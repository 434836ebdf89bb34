package uploader

import (
	"bufio"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"brainrot/internal/logging"
	"brainrot/internal/services"
)

var commandContext = exec.CommandContext

// Request describes one upload invocation.
type Request struct {
	FilePath    string
	Title       string
	Description string
	Keywords    []string
	Category    string
	Privacy     string
	PlaylistID  string
}

// Client defines publish behaviour.
type Client interface {
	Upload(ctx context.Context, req Request) error
}

// CLI wraps the upload command-line collaborator. Progress lines streamed on
// stdout are classified by substring match: lines mentioning "error" are
// logged at error level, everything else as progress.
type CLI struct {
	command string
	logger  *slog.Logger
}

// NewCLI constructs a CLI client for the given command.
func NewCLI(command string, logger *slog.Logger) *CLI {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CLI{command: command, logger: logging.NewComponentLogger(logger, "uploader")}
}

// Upload runs the collaborator and streams its progress output. On non-zero
// exit the collected stderr lines become the failure detail.
func (c *CLI) Upload(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.FilePath) == "" {
		return services.Wrap(services.ErrPublishFailed, "publish", "upload", "empty file path", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return services.Wrap(services.ErrPublishFailed, "publish", "upload", "empty title", nil)
	}

	args := []string{
		"--file", req.FilePath,
		"--title", req.Title,
		"--description", req.Description,
		"--keywords", strings.Join(req.Keywords, ","),
		"--category", req.Category,
		"--privacyStatus", req.Privacy,
	}
	if req.PlaylistID != "" {
		args = append(args, "--playlistId", req.PlaylistID)
	}

	cmd := commandContext(ctx, c.command, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrPublishFailed, "publish", "upload", "stdout pipe", err)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrPublishFailed, "publish", "start uploader", "", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.Contains(strings.ToLower(line), "error") {
			c.logger.Error("upload reported error", logging.String("line", line), logging.String("title", req.Title))
		} else {
			c.logger.Info("upload progress", logging.String("line", line), logging.String("title", req.Title))
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return services.Wrap(services.ErrPublishFailed, "publish", "read uploader output", "", err)
	}

	if err := cmd.Wait(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "upload failed with no error message"
		}
		return services.Wrap(services.ErrPublishFailed, "publish", "upload", detail, err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
