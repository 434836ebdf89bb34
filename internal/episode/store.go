package episode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable episode counter. The counter is monotonically
// non-decreasing across successful runs; the pipeline reads it at run start
// for title numbering and increments it exactly once at successful run end.
type Store interface {
	Current() (int, error)
	Increment() (int, error)
}

type stateFile struct {
	Episode int `json:"episode"`
}

// FileStore persists the counter as a single JSON object on disk. There is no
// cross-process locking; the CLI serializes runs with its own run lock.
type FileStore struct {
	path string
}

// NewFileStore builds a store backed by the given state file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Current returns the stored episode number. A missing state file reads as
// episode zero so a fresh install starts at the beginning.
func (s *FileStore) Current() (int, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read episode state: %w", err)
	}
	var state stateFile
	if err := json.Unmarshal(raw, &state); err != nil {
		return 0, fmt.Errorf("parse episode state: %w", err)
	}
	if state.Episode < 0 {
		return 0, fmt.Errorf("episode state: negative episode %d", state.Episode)
	}
	return state.Episode, nil
}

// Increment bumps the counter by one and rewrites the whole state file.
func (s *FileStore) Increment() (int, error) {
	current, err := s.Current()
	if err != nil {
		return 0, err
	}
	next := current + 1
	raw, err := json.MarshalIndent(stateFile{Episode: next}, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode episode state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return 0, fmt.Errorf("write episode state: %w", err)
	}
	return next, nil
}

// Set overwrites the counter. Used by the episode CLI, never by the pipeline.
func (s *FileStore) Set(value int) error {
	if value < 0 {
		return fmt.Errorf("episode must not be negative (got %d)", value)
	}
	raw, err := json.MarshalIndent(stateFile{Episode: value}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode episode state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write episode state: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu      sync.Mutex
	episode int
}

// NewMemoryStore seeds an in-memory store with the given episode number.
func NewMemoryStore(episode int) *MemoryStore {
	return &MemoryStore{episode: episode}
}

func (s *MemoryStore) Current() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.episode, nil
}

func (s *MemoryStore) Increment() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.episode++
	return s.episode, nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
