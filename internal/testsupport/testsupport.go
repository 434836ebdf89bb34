// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"brainrot/internal/config"
)

// NewConfig returns a validated configuration rooted in per-test temp
// directories. Collaborator commands default to /bin/true so exercising the
// pipeline does not require the real toolchain.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CorpusFile = filepath.Join(base, "corpus.csv")
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.VideoTemplate = filepath.Join(base, "template.mp4")
	cfg.Paths.StateFile = filepath.Join(base, "state", "episode.json")
	cfg.Paths.RunLogDB = filepath.Join(base, "state", "runs.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.LLM.BaseURL = "http://127.0.0.1:1"
	cfg.Narration.Command = "/bin/true"
	cfg.Render.Command = "/bin/true"
	cfg.Split.Command = "/bin/true"
	cfg.Publish.Command = "/bin/true"
	cfg.Pipeline.SettleSeconds = 0

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WriteFile creates a file with the given contents under dir, creating parent
// directories as needed, and returns its path.
func WriteFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
