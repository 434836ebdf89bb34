package splitter

import (
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"brainrot/internal/services"
)

var commandContext = exec.CommandContext

// Part is one bounded-duration video segment ready for publishing.
type Part struct {
	Path string
}

// Client defines media splitting behaviour.
type Client interface {
	Split(ctx context.Context, videoPath, workDir string, maxSeconds float64) ([]Part, error)
}

// CLI wraps the splitting command-line collaborator.
type CLI struct {
	command string
}

// NewCLI constructs a CLI client for the given command.
func NewCLI(command string) *CLI {
	return &CLI{command: command}
}

// Split cuts an over-length video into parts no longer than maxSeconds each.
// The collaborator reports its outputs on stdout as `KIND:filename` records
// relative to workDir; video entries become parts in manifest order, with
// reference intermediates excluded.
func (c *CLI) Split(ctx context.Context, videoPath, workDir string, maxSeconds float64) ([]Part, error) {
	if strings.TrimSpace(videoPath) == "" {
		return nil, services.Wrap(services.ErrSplitFailed, "split", "split", "empty video path", nil)
	}
	if strings.TrimSpace(workDir) == "" {
		return nil, services.Wrap(services.ErrSplitFailed, "split", "split", "empty working directory", nil)
	}

	maxArg := strconv.FormatFloat(maxSeconds, 'f', -1, 64)
	cmd := commandContext(ctx, c.command, videoPath, workDir, maxArg)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	stdout, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "no diagnostic output"
		}
		return nil, services.Wrap(services.ErrSplitFailed, "split", "run splitter", detail, err)
	}

	var parts []Part
	for _, entry := range ParseManifest(string(stdout)) {
		if entry.Kind != KindVideo || entry.IsOriginal() {
			continue
		}
		parts = append(parts, Part{Path: filepath.Join(workDir, entry.Filename)})
	}
	if len(parts) == 0 {
		return nil, services.Wrap(services.ErrSplitFailed, "split", "parse manifest", "no video parts reported", nil)
	}
	return parts, nil
}

var _ Client = (*CLI)(nil)
