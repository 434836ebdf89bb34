package runlog

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordStartAndOutcome(t *testing.T) {
	store := openTestStore(t)
	ctx := t.Context()

	if err := store.RecordStart(ctx, "run-1", time.Now()); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	outcome := Outcome{
		Status:          StatusPublished,
		Episode:         7,
		Title:           "Reddit Confessions #7 | Story",
		DurationSeconds: 48.5,
		Parts:           1,
	}
	if err := store.RecordOutcome(ctx, "run-1", outcome); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	run := runs[0]
	if run.Status != StatusPublished || run.Episode != 7 || run.Parts != 1 {
		t.Fatalf("run = %+v", run)
	}
	if run.FinishedAt.IsZero() {
		t.Fatal("finished_at not recorded")
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := t.Context()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.RecordStart(ctx, id, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("RecordStart %s: %v", id, err)
		}
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "run-c" || runs[1].RunID != "run-b" {
		t.Fatalf("order = %s, %s", runs[0].RunID, runs[1].RunID)
	}
}

func TestRecordOutcomeStoresError(t *testing.T) {
	store := openTestStore(t)
	ctx := t.Context()

	if err := store.RecordStart(ctx, "run-x", time.Now()); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	outcome := Outcome{Status: StatusFailed, Err: errors.New("render exploded")}
	if err := store.RecordOutcome(ctx, "run-x", outcome); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}

	runs, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if runs[0].Error != "render exploded" {
		t.Fatalf("error = %q", runs[0].Error)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := Open(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
