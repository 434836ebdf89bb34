package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"brainrot/internal/logging"
	"brainrot/internal/metadata"
	"brainrot/internal/services"
	"brainrot/internal/services/uploader"
)

// Job pairs one finished video file with its display title.
type Job struct {
	FilePath string
	Title    string
}

// ShortTitle formats the title for a single-upload episode. The #shorts tag
// is part of the title so the platform files it under the short-form feed.
func ShortTitle(prefix string, episode int, title string) string {
	return fmt.Sprintf("%s #%d | %s #shorts", prefix, episode, title)
}

// PartTitle formats the title for one part of a split episode.
func PartTitle(prefix string, episode int, title string, part, total int) string {
	return fmt.Sprintf("%s #%d | %s (Part %d/%d)", prefix, episode, title, part, total)
}

// LongTitle formats the title for a long video that survived splitting as a
// single file; it carries neither the #shorts tag nor a part suffix.
func LongTitle(prefix string, episode int, title string) string {
	return fmt.Sprintf("%s #%d | %s", prefix, episode, title)
}

// BuildPartJobs numbers the given part files contiguously from 1 in order.
// A lone part keeps the plain long-form title.
func BuildPartJobs(prefix string, episode int, title string, paths []string) []Job {
	if len(paths) == 1 {
		return []Job{{FilePath: paths[0], Title: LongTitle(prefix, episode, title)}}
	}
	jobs := make([]Job, 0, len(paths))
	for i, path := range paths {
		jobs = append(jobs, Job{
			FilePath: path,
			Title:    PartTitle(prefix, episode, title, i+1, len(paths)),
		})
	}
	return jobs
}

// Fanout publishes a batch of jobs through the upload collaborator, either
// sequentially with a pacing delay or concurrently.
type Fanout struct {
	client     uploader.Client
	concurrent bool
	delay      time.Duration
	category   string
	privacy    string
	playlistID string
	logger     *slog.Logger
}

// NewFanout constructs a publish fanout.
func NewFanout(client uploader.Client, concurrent bool, delay time.Duration, category, privacy, playlistID string, logger *slog.Logger) *Fanout {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Fanout{
		client:     client,
		concurrent: concurrent,
		delay:      delay,
		category:   category,
		privacy:    privacy,
		playlistID: playlistID,
		logger:     logging.NewComponentLogger(logger, "publish"),
	}
}

// Publish uploads every job. Sequential mode stops at the first failure so a
// rejected upload does not burn quota on the remaining parts; concurrent mode
// lets every upload run to completion and reports the first error.
func (f *Fanout) Publish(ctx context.Context, jobs []Job, meta metadata.Metadata) error {
	if len(jobs) == 0 {
		return services.Wrap(services.ErrPublishFailed, "publish", "fanout", "no jobs to publish", nil)
	}
	if f.concurrent {
		return f.publishConcurrent(ctx, jobs, meta)
	}
	return f.publishSequential(ctx, jobs, meta)
}

func (f *Fanout) publishSequential(ctx context.Context, jobs []Job, meta metadata.Metadata) error {
	for i, job := range jobs {
		if i > 0 && f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		f.logger.Info("publishing", logging.String("title", job.Title), logging.Int("job", i+1), logging.Int("jobs", len(jobs)))
		if err := f.client.Upload(ctx, f.request(job, meta)); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fanout) publishConcurrent(ctx context.Context, jobs []Job, meta metadata.Metadata) error {
	var group errgroup.Group
	for _, job := range jobs {
		group.Go(func() error {
			f.logger.Info("publishing", logging.String("title", job.Title))
			return f.client.Upload(ctx, f.request(job, meta))
		})
	}
	return group.Wait()
}

func (f *Fanout) request(job Job, meta metadata.Metadata) uploader.Request {
	return uploader.Request{
		FilePath:    job.FilePath,
		Title:       job.Title,
		Description: meta.Description,
		Keywords:    meta.Keywords,
		Category:    f.category,
		Privacy:     f.privacy,
		PlaylistID:  f.playlistID,
	}
}
