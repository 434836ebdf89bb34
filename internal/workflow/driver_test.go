package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"brainrot/internal/acquisition"
	"brainrot/internal/config"
	"brainrot/internal/corpus"
	"brainrot/internal/episode"
	"brainrot/internal/metadata"
	"brainrot/internal/runlog"
	"brainrot/internal/services"
	"brainrot/internal/services/renderer"
	"brainrot/internal/services/splitter"
	"brainrot/internal/testsupport"
)

type fakeAcquirer struct {
	candidate acquisition.Candidate
	err       error
}

func (f *fakeAcquirer) Acquire(ctx context.Context) (acquisition.Candidate, error) {
	return f.candidate, f.err
}

type fakeNarrator struct {
	text string
	path string
	err  error
}

func (f *fakeNarrator) Synthesize(ctx context.Context, text, outputPath string) error {
	f.text = text
	f.path = outputPath
	return f.err
}

type fakeRenderer struct {
	req renderer.Request
	err error
}

func (f *fakeRenderer) Render(ctx context.Context, req renderer.Request) error {
	f.req = req
	return f.err
}

type fakeSplitter struct {
	parts  []splitter.Part
	err    error
	called bool
}

func (f *fakeSplitter) Split(ctx context.Context, videoPath, workDir string, maxSeconds float64) ([]splitter.Part, error) {
	f.called = true
	return f.parts, f.err
}

type fakeNotifier struct {
	gathering  int
	audioReady int
	published  []string
	errs       []error
}

func (f *fakeNotifier) NotifyGathering(ctx context.Context)  { f.gathering++ }
func (f *fakeNotifier) NotifyAudioReady(ctx context.Context) { f.audioReady++ }
func (f *fakeNotifier) NotifyPublished(ctx context.Context, title string) {
	f.published = append(f.published, title)
}
func (f *fakeNotifier) NotifyError(ctx context.Context, err error) { f.errs = append(f.errs, err) }
func (f *fakeNotifier) Test(ctx context.Context) error             { return nil }

type fakeLedger struct {
	started  []string
	outcomes map[string]runlog.Outcome
}

func (f *fakeLedger) RecordStart(ctx context.Context, runID string, startedAt time.Time) error {
	f.started = append(f.started, runID)
	return nil
}

func (f *fakeLedger) RecordOutcome(ctx context.Context, runID string, outcome runlog.Outcome) error {
	if f.outcomes == nil {
		f.outcomes = map[string]runlog.Outcome{}
	}
	f.outcomes[runID] = outcome
	return nil
}

type driverFixture struct {
	cfg      *config.Config
	acquirer *fakeAcquirer
	narrator *fakeNarrator
	renderer *fakeRenderer
	splitter *fakeSplitter
	uploader *recordingUploader
	notifier *fakeNotifier
	ledger   *fakeLedger
	episodes *episode.MemoryStore
	driver   *Driver
	duration float64
}

func newDriverFixture(t *testing.T) *driverFixture {
	t.Helper()

	f := &driverFixture{
		cfg: testsupport.NewConfig(t),
		acquirer: &fakeAcquirer{candidate: acquisition.Candidate{
			Record:           corpus.Record{Body: "I did a thing", Title: "Confession"},
			Meta:             metadata.Metadata{Title: "A Wild Story", Description: "desc", Keywords: []string{"shorts"}},
			EstimatedSeconds: 45,
		}},
		narrator: &fakeNarrator{},
		renderer: &fakeRenderer{},
		splitter: &fakeSplitter{},
		uploader: &recordingUploader{},
		notifier: &fakeNotifier{},
		ledger:   &fakeLedger{},
		episodes: episode.NewMemoryStore(4),
		duration: 45,
	}
	fanout := NewFanout(f.uploader, false, 0, f.cfg.Publish.Category, f.cfg.Publish.Privacy, "", nil)
	f.driver = NewDriver(f.cfg, Deps{
		Acquirer: f.acquirer,
		Narrator: f.narrator,
		Renderer: f.renderer,
		Splitter: f.splitter,
		Fanout:   fanout,
		Episodes: f.episodes,
		Notifier: f.notifier,
		Ledger:   f.ledger,
	}, nil)
	f.driver.probe = func(ctx context.Context, path string) (float64, error) {
		return f.duration, nil
	}
	return f
}

func TestRunShortRoutePublishesSingleUpload(t *testing.T) {
	f := newDriverFixture(t)

	result, err := f.driver.Run(t.Context())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Route != RouteShort || result.Parts != 1 || !result.Published {
		t.Fatalf("result = %+v", result)
	}
	if result.Episode != 5 {
		t.Fatalf("episode = %d, want 5", result.Episode)
	}
	if len(f.uploader.requests) != 1 {
		t.Fatalf("got %d uploads, want 1", len(f.uploader.requests))
	}
	title := f.uploader.requests[0].Title
	if title != "Reddit Confessions #5 | A Wild Story #shorts" {
		t.Fatalf("title = %q", title)
	}
	if current, _ := f.episodes.Current(); current != 5 {
		t.Fatalf("counter = %d, want 5", current)
	}
	if f.splitter.called {
		t.Fatal("splitter must not run for short videos")
	}
	if f.notifier.gathering != 1 || f.notifier.audioReady != 1 || len(f.notifier.published) != 1 {
		t.Fatalf("notifier = %+v", f.notifier)
	}
	if f.narrator.text != f.renderer.req.CaptionText {
		t.Fatalf("caption %q diverges from narration %q", f.renderer.req.CaptionText, f.narrator.text)
	}
	if f.ledger.outcomes[result.RunID].Status != runlog.StatusPublished {
		t.Fatalf("ledger outcome = %+v", f.ledger.outcomes[result.RunID])
	}
}

func TestRunLongRouteSplitsAndNumbersParts(t *testing.T) {
	f := newDriverFixture(t)
	f.duration = 95
	f.splitter.parts = []splitter.Part{{Path: "/w/part1.mp4"}, {Path: "/w/part2.mp4"}}

	result, err := f.driver.Run(t.Context())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Route != RouteLong || result.Parts != 2 {
		t.Fatalf("result = %+v", result)
	}
	if len(f.uploader.requests) != 2 {
		t.Fatalf("got %d uploads, want 2", len(f.uploader.requests))
	}
	if got := f.uploader.requests[0].Title; !strings.HasSuffix(got, "(Part 1/2)") {
		t.Fatalf("first title = %q", got)
	}
	if got := f.uploader.requests[1].Title; !strings.HasSuffix(got, "(Part 2/2)") {
		t.Fatalf("second title = %q", got)
	}
}

func TestRunDebugSkipsPublishAndCounter(t *testing.T) {
	f := newDriverFixture(t)
	f.cfg.Pipeline.Debug = true

	result, err := f.driver.Run(t.Context())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Published {
		t.Fatal("debug run must not publish")
	}
	if len(f.uploader.requests) != 0 {
		t.Fatalf("got %d uploads, want none", len(f.uploader.requests))
	}
	if current, _ := f.episodes.Current(); current != 4 {
		t.Fatalf("counter advanced to %d in debug run", current)
	}
	if f.ledger.outcomes[result.RunID].Status != runlog.StatusDebug {
		t.Fatalf("ledger outcome = %+v", f.ledger.outcomes[result.RunID])
	}
}

func TestRunFailureNotifiesAndRecords(t *testing.T) {
	f := newDriverFixture(t)
	f.renderer.err = services.Wrap(services.ErrRenderFailed, "render", "run renderer", "ffmpeg crashed", nil)

	result, err := f.driver.Run(t.Context())
	if !errors.Is(err, services.ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed, got %v", err)
	}
	if len(f.notifier.errs) != 1 {
		t.Fatalf("error notifications = %d, want 1", len(f.notifier.errs))
	}
	if f.ledger.outcomes[result.RunID].Status != runlog.StatusFailed {
		t.Fatalf("ledger outcome = %+v", f.ledger.outcomes[result.RunID])
	}
	if current, _ := f.episodes.Current(); current != 4 {
		t.Fatalf("counter advanced to %d on failed run", current)
	}
}

func TestRunAcquisitionExhaustionPropagates(t *testing.T) {
	f := newDriverFixture(t)
	f.acquirer.err = services.Wrap(services.ErrAcquisitionExhausted, "acquisition", "acquire", "budget spent", nil)

	_, err := f.driver.Run(t.Context())
	if !errors.Is(err, services.ErrAcquisitionExhausted) {
		t.Fatalf("expected ErrAcquisitionExhausted, got %v", err)
	}
	if len(f.uploader.requests) != 0 {
		t.Fatal("nothing should be published after exhausted acquisition")
	}
}
