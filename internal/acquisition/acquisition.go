// Package acquisition drives the bounded sample-and-generate retry loop that
// turns raw corpus records into publishable candidates.
package acquisition

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"brainrot/internal/corpus"
	"brainrot/internal/logging"
	"brainrot/internal/metadata"
	"brainrot/internal/services"
)

// Sampler yields one candidate record per call.
type Sampler interface {
	Sample() (corpus.Record, error)
}

// Generator produces publish metadata for a sampled text.
type Generator interface {
	Generate(ctx context.Context, text string) (metadata.Metadata, error)
}

// Candidate is an accepted record with its metadata and the narration length
// estimate that cleared the acceptance gate.
type Candidate struct {
	Record           corpus.Record
	Meta             metadata.Metadata
	EstimatedSeconds float64
}

// Loop retries acquisition until a candidate passes every gate or the
// attempt budget runs out.
type Loop struct {
	sampler        Sampler
	generator      Generator
	maxAttempts    int
	minSeconds     float64
	secondsPerWord float64
	logger         *slog.Logger
}

// NewLoop constructs an acquisition loop. maxAttempts is the total attempt
// budget; every rejection consumes one attempt.
func NewLoop(sampler Sampler, generator Generator, maxAttempts int, minSeconds, secondsPerWord float64, logger *slog.Logger) *Loop {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loop{
		sampler:        sampler,
		generator:      generator,
		maxAttempts:    maxAttempts,
		minSeconds:     minSeconds,
		secondsPerWord: secondsPerWord,
		logger:         logging.NewComponentLogger(logger, "acquisition"),
	}
}

// Acquire runs up to the configured number of attempts. Each attempt samples
// a record, gates it on the estimated narration length, generates metadata,
// and rejects model refusals. Source unavailability and unrecoverable
// generation failures abort immediately; every other rejection consumes an
// attempt. An exhausted budget yields ErrAcquisitionExhausted.
func (l *Loop) Acquire(ctx context.Context) (Candidate, error) {
	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Candidate{}, err
		}

		record, err := l.sampler.Sample()
		if err != nil {
			if errors.Is(err, services.ErrSourceUnavailable) {
				return Candidate{}, err
			}
			l.reject(attempt, "sampling", err.Error())
			continue
		}

		estimate := EstimateSeconds(record.Text(), l.secondsPerWord)
		if estimate < l.minSeconds {
			l.reject(attempt, "too_short", "")
			continue
		}

		meta, err := l.generator.Generate(ctx, record.Text())
		if err != nil {
			if !services.Recoverable(err) {
				return Candidate{}, err
			}
			l.reject(attempt, "generation", err.Error())
			continue
		}

		if metadata.IsRefusal(meta.Title) {
			l.reject(attempt, "refusal", meta.Title)
			continue
		}

		l.logger.Info("candidate accepted",
			logging.Int("attempt", attempt),
			logging.Float64("estimated_seconds", estimate),
			logging.String("title", meta.Title))
		return Candidate{Record: record, Meta: meta, EstimatedSeconds: estimate}, nil
	}
	return Candidate{}, services.Wrap(services.ErrAcquisitionExhausted, "acquisition", "acquire",
		"attempt budget exhausted", nil)
}

// EstimateSeconds predicts narration length from word count. It gates
// acquisition cheaply; the synthesized audio is probed for the authoritative
// duration later.
func EstimateSeconds(text string, secondsPerWord float64) float64 {
	return float64(len(strings.Fields(text))) * secondsPerWord
}

func (l *Loop) reject(attempt int, reason, detail string) {
	attrs := []any{
		logging.Int("attempt", attempt),
		logging.Int("max_attempts", l.maxAttempts),
		logging.String("reason", reason),
	}
	if detail != "" {
		attrs = append(attrs, logging.String("detail", detail))
	}
	l.logger.Warn("candidate rejected", attrs...)
}
