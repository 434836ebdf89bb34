package workflow

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"brainrot/internal/acquisition"
	"brainrot/internal/config"
	"brainrot/internal/episode"
	"brainrot/internal/fileutil"
	"brainrot/internal/logging"
	"brainrot/internal/media/ffprobe"
	"brainrot/internal/metadata"
	"brainrot/internal/notifications"
	"brainrot/internal/runlog"
	"brainrot/internal/services"
	"brainrot/internal/services/renderer"
	"brainrot/internal/services/splitter"
	"brainrot/internal/services/tts"
)

// Working filenames inside the workspace. The workspace is cleared at the
// start of every run, so the names never collide.
const (
	narrationFilename = "narration.wav"
	videoFilename     = "output.mp4"
)

// Acquirer yields one accepted candidate per run.
type Acquirer interface {
	Acquire(ctx context.Context) (acquisition.Candidate, error)
}

// Ledger records run history. Ledger failures never fail a run.
type Ledger interface {
	RecordStart(ctx context.Context, runID string, startedAt time.Time) error
	RecordOutcome(ctx context.Context, runID string, outcome runlog.Outcome) error
}

// Result summarizes one completed run.
type Result struct {
	RunID           string
	Episode         int
	Title           string
	Route           Route
	DurationSeconds float64
	Parts           int
	Published       bool
}

// Deps bundles the collaborators a Driver orchestrates.
type Deps struct {
	Acquirer Acquirer
	Narrator tts.Client
	Renderer renderer.Client
	Splitter splitter.Client
	Fanout   *Fanout
	Episodes episode.Store
	Notifier notifications.Service
	Ledger   Ledger
}

// Driver runs the production pipeline end to end: sample, generate, narrate,
// render, route, split when over-length, publish, and advance the episode
// counter.
type Driver struct {
	cfg    *config.Config
	deps   Deps
	logger *slog.Logger

	probe func(ctx context.Context, path string) (float64, error)
	sleep func(ctx context.Context, d time.Duration) error
}

// NewDriver constructs a Driver.
func NewDriver(cfg *config.Config, deps Deps, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Driver{
		cfg:    cfg,
		deps:   deps,
		logger: logging.NewComponentLogger(logger, "workflow"),
		probe: func(ctx context.Context, path string) (float64, error) {
			return ffprobe.Duration(ctx, cfg.FFprobeBinary(), path)
		},
		sleep: func(ctx context.Context, d time.Duration) error {
			if d <= 0 {
				return nil
			}
			select {
			case <-time.After(d):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

// Run executes one pipeline run. On failure the error notification fires and
// the ledger records the failed run before the error is returned.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := d.logger.With(logging.String("run_id", runID))
	startedAt := time.Now()

	d.recordStart(ctx, runID, startedAt, logger)

	result, err := d.run(ctx, runID, logger)
	if err != nil {
		d.deps.Notifier.NotifyError(ctx, err)
		d.recordOutcome(ctx, runID, runlog.Outcome{Status: runlog.StatusFailed, Err: err}, logger)
		return Result{RunID: runID}, err
	}

	status := runlog.StatusPublished
	if !result.Published {
		status = runlog.StatusDebug
	}
	d.recordOutcome(ctx, runID, runlog.Outcome{
		Status:          status,
		Episode:         result.Episode,
		Title:           result.Title,
		DurationSeconds: result.DurationSeconds,
		Parts:           result.Parts,
	}, logger)
	return result, nil
}

func (d *Driver) run(ctx context.Context, runID string, logger *slog.Logger) (Result, error) {
	if err := d.cfg.EnsureDirectories(); err != nil {
		return Result{}, err
	}
	if err := fileutil.ClearDir(d.cfg.Paths.WorkspaceDir); err != nil {
		return Result{}, err
	}

	settle := time.Duration(d.cfg.Pipeline.SettleSeconds) * time.Second
	if err := d.sleep(ctx, settle); err != nil {
		return Result{}, err
	}

	d.deps.Notifier.NotifyGathering(ctx)
	candidate, err := d.deps.Acquirer.Acquire(services.WithStage(ctx, "acquisition"))
	if err != nil {
		return Result{}, err
	}

	current, err := d.deps.Episodes.Current()
	if err != nil {
		return Result{}, err
	}
	episodeNumber := current + 1
	ctx = services.WithEpisode(ctx, episodeNumber)
	title := metadata.SanitizeTitle(candidate.Meta.Title)
	logger.Info("candidate ready",
		logging.Int("episode", episodeNumber),
		logging.String("title", title),
		logging.Float64("estimated_seconds", candidate.EstimatedSeconds))

	text := candidate.Record.Text()
	audioPath := filepath.Join(d.cfg.Paths.WorkspaceDir, narrationFilename)
	if err := d.deps.Narrator.Synthesize(services.WithStage(ctx, "narration"), text, audioPath); err != nil {
		return Result{}, err
	}
	d.deps.Notifier.NotifyAudioReady(ctx)

	duration, err := d.probe(ctx, audioPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrSynthesisFailed, "narration", "probe duration", audioPath, err)
	}

	route := Classify(duration, d.cfg.Pipeline.MaxVideoSeconds)
	logger.Info("narration routed",
		logging.Float64("duration_seconds", duration),
		logging.String("route", route.String()))

	videoPath := filepath.Join(d.cfg.Paths.WorkspaceDir, videoFilename)
	renderReq := renderer.Request{
		TemplatePath: d.cfg.Paths.VideoTemplate,
		AudioPath:    audioPath,
		CaptionText:  text,
		OutputPath:   videoPath,
	}
	if err := d.deps.Renderer.Render(services.WithStage(ctx, "render"), renderReq); err != nil {
		return Result{}, err
	}

	prefix := d.cfg.Publish.SeriesPrefix
	var jobs []Job
	if route == RouteShort {
		jobs = []Job{{FilePath: videoPath, Title: ShortTitle(prefix, episodeNumber, title)}}
	} else {
		parts, err := d.deps.Splitter.Split(services.WithStage(ctx, "split"),
			videoPath, d.cfg.Paths.WorkspaceDir, d.cfg.Pipeline.MaxVideoSeconds)
		if err != nil {
			return Result{}, err
		}
		paths := make([]string, 0, len(parts))
		for _, part := range parts {
			paths = append(paths, part.Path)
		}
		jobs = BuildPartJobs(prefix, episodeNumber, title, paths)
	}

	result := Result{
		RunID:           runID,
		Episode:         episodeNumber,
		Title:           title,
		Route:           route,
		DurationSeconds: duration,
		Parts:           len(jobs),
	}

	if d.cfg.Pipeline.Debug {
		logger.Info("debug run, skipping publish", logging.Int("jobs", len(jobs)))
		return result, nil
	}

	meta := candidate.Meta
	meta.Title = title
	if err := d.deps.Fanout.Publish(services.WithStage(ctx, "publish"), jobs, meta); err != nil {
		return Result{}, err
	}
	if _, err := d.deps.Episodes.Increment(); err != nil {
		return Result{}, err
	}
	d.deps.Notifier.NotifyPublished(ctx, jobs[0].Title)
	result.Published = true
	return result, nil
}

func (d *Driver) recordStart(ctx context.Context, runID string, startedAt time.Time, logger *slog.Logger) {
	if d.deps.Ledger == nil {
		return
	}
	if err := d.deps.Ledger.RecordStart(ctx, runID, startedAt); err != nil {
		logger.Warn("run ledger unavailable", logging.Error(err))
	}
}

func (d *Driver) recordOutcome(ctx context.Context, runID string, outcome runlog.Outcome, logger *slog.Logger) {
	if d.deps.Ledger == nil {
		return
	}
	if err := d.deps.Ledger.RecordOutcome(ctx, runID, outcome); err != nil {
		logger.Warn("run ledger update failed", logging.Error(err))
	}
}
