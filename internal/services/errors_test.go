package services_test

import (
	"errors"
	"strings"
	"testing"

	"brainrot/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrSynthesisFailed, "narration", "run tts", "collaborator exited", base)
	if !errors.Is(err, services.ErrSynthesisFailed) {
		t.Fatalf("expected ErrSynthesisFailed marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	for _, fragment := range []string{"narration", "run tts", "collaborator exited"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrNoValidRecord, "corpus", "sample", "attempt budget spent", nil)
	if !errors.Is(err, services.ErrNoValidRecord) {
		t.Fatalf("expected ErrNoValidRecord marker, got %v", err)
	}
}

func TestRecoverable(t *testing.T) {
	recoverable := services.Wrap(services.ErrGenerationFailed, "metadata", "generate title", "", errors.New("http 500"))
	if !services.Recoverable(recoverable) {
		t.Fatal("generation failures should be recoverable")
	}
	fatal := services.Wrap(services.ErrSourceUnavailable, "corpus", "open", "", errors.New("no such file"))
	if services.Recoverable(fatal) {
		t.Fatal("source failures must not be recoverable")
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := services.WithRunID(t.Context(), "run-1")
	ctx = services.WithStage(ctx, "render")
	ctx = services.WithEpisode(ctx, 7)

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("run id = %q, ok = %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "render" {
		t.Fatalf("stage = %q, ok = %v", stage, ok)
	}
	if episode, ok := services.EpisodeFromContext(ctx); !ok || episode != 7 {
		t.Fatalf("episode = %d, ok = %v", episode, ok)
	}
}
