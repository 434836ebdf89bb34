package episode_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"brainrot/internal/episode"
)

func TestFileStoreIncrement(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.json")
	if err := os.WriteFile(path, []byte(`{"episode": 7}`), 0o644); err != nil {
		t.Fatalf("seed state: %v", err)
	}

	store := episode.NewFileStore(path)
	next, err := store.Increment()
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if next != 8 {
		t.Fatalf("next episode = %d, want 8", next)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	var state struct {
		Episode int `json:"episode"`
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("parse state: %v", err)
	}
	if state.Episode != 8 {
		t.Fatalf("persisted episode = %d, want 8", state.Episode)
	}
}

func TestFileStoreMissingFileReadsZero(t *testing.T) {
	store := episode.NewFileStore(filepath.Join(t.TempDir(), "nope", "episode.json"))
	current, err := store.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if current != 0 {
		t.Fatalf("current = %d, want 0", current)
	}
}

func TestFileStoreIncrementCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "episode.json")
	store := episode.NewFileStore(path)
	if next, err := store.Increment(); err != nil || next != 1 {
		t.Fatalf("Increment: next=%d err=%v", next, err)
	}
}

func TestFileStoreRejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.json")
	if err := os.WriteFile(path, []byte(`{"episode": -2}`), 0o644); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	if _, err := episode.NewFileStore(path).Current(); err == nil {
		t.Fatal("expected error for negative episode")
	}
}

func TestFileStoreSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.json")
	store := episode.NewFileStore(path)
	if err := store.Set(42); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if current, err := store.Current(); err != nil || current != 42 {
		t.Fatalf("Current after Set: %d, %v", current, err)
	}
	if err := store.Set(-1); err == nil {
		t.Fatal("expected error for negative value")
	}
}

func TestMemoryStore(t *testing.T) {
	store := episode.NewMemoryStore(3)
	if current, _ := store.Current(); current != 3 {
		t.Fatalf("current = %d", current)
	}
	if next, _ := store.Increment(); next != 4 {
		t.Fatalf("next = %d", next)
	}
}
