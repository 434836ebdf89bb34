// Package notifications delivers pipeline milestone pings to an external
// notification endpoint. Delivery failures are logged and swallowed: a
// missed ping must never fail a run.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"brainrot/internal/logging"
)

// Sound names map to the receiving app's notification tones.
const (
	soundGathering = "shake"
	soundAudio     = "bell"
	soundPublished = "magic"
	soundError     = "falling"
)

// Service defines the milestone notification surface.
type Service interface {
	NotifyGathering(ctx context.Context)
	NotifyAudioReady(ctx context.Context)
	NotifyPublished(ctx context.Context, title string)
	NotifyError(ctx context.Context, err error)
	Test(ctx context.Context) error
}

// HTTPService posts JSON messages to a configured webhook URL. An empty URL
// yields a service that silently drops every notification.
type HTTPService struct {
	url     string
	client  *http.Client
	logger  *slog.Logger
	timeout time.Duration
}

// Option customizes HTTPService construction.
type Option func(*HTTPService)

// WithHTTPClient overrides the HTTP client used for delivery.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPService) {
		if client != nil {
			s.client = client
		}
	}
}

// NewHTTPService constructs a notification service for the given webhook URL.
func NewHTTPService(url string, timeout time.Duration, logger *slog.Logger, opts ...Option) *HTTPService {
	if logger == nil {
		logger = logging.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	s := &HTTPService{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		logger:  logging.NewComponentLogger(logger, "notifications"),
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type payload struct {
	Message string `json:"message"`
	Sound   string `json:"sound"`
}

// NotifyGathering announces that a new run has started sampling text.
func (s *HTTPService) NotifyGathering(ctx context.Context) {
	s.send(ctx, "Gathering a new confession", soundGathering)
}

// NotifyAudioReady announces that narration synthesis finished.
func (s *HTTPService) NotifyAudioReady(ctx context.Context) {
	s.send(ctx, "Narration audio is ready", soundAudio)
}

// NotifyPublished announces a completed publish.
func (s *HTTPService) NotifyPublished(ctx context.Context, title string) {
	s.send(ctx, fmt.Sprintf("Published: %s", title), soundPublished)
}

// NotifyError announces a failed run.
func (s *HTTPService) NotifyError(ctx context.Context, err error) {
	s.send(ctx, fmt.Sprintf("Run failed: %v", err), soundError)
}

// Test delivers a probe notification and, unlike the milestone methods,
// returns the delivery error so the CLI can report it.
func (s *HTTPService) Test(ctx context.Context) error {
	if s.url == "" {
		return fmt.Errorf("no notification URL configured")
	}
	return s.post(ctx, payload{Message: "Test notification", Sound: soundAudio})
}

func (s *HTTPService) send(ctx context.Context, message, sound string) {
	if s.url == "" {
		return
	}
	if err := s.post(ctx, payload{Message: message, Sound: sound}); err != nil {
		s.logger.Warn("notification delivery failed", logging.Error(err))
	}
}

func (s *HTTPService) post(ctx context.Context, p payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification endpoint returned %s", resp.Status)
	}
	return nil
}

var _ Service = (*HTTPService)(nil)
