package renderer

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"brainrot/internal/services"
)

var commandContext = exec.CommandContext

// Request describes one render invocation. Caption text must match the
// narrated text word for word so captions and audio stay aligned.
type Request struct {
	TemplatePath string
	AudioPath    string
	CaptionText  string
	OutputPath   string
}

// Client defines video rendering behaviour.
type Client interface {
	Render(ctx context.Context, req Request) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithFontSize overrides the subtitle font size.
func WithFontSize(size int) Option {
	return func(c *CLI) {
		if size > 0 {
			c.fontSize = size
		}
	}
}

// WithSubtitleColor overrides the subtitle color.
func WithSubtitleColor(color string) Option {
	return func(c *CLI) {
		c.color = strings.TrimSpace(color)
	}
}

// CLI wraps the rendering command-line collaborator.
type CLI struct {
	command  string
	fontSize int
	color    string
}

// NewCLI constructs a CLI client for the given command.
func NewCLI(command string, opts ...Option) *CLI {
	cli := &CLI{command: command}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Render runs the collaborator to composite captions and narration onto the
// template video. The font size is only passed when set, and the color only
// when a font size is also set, matching the collaborator's positional
// contract.
func (c *CLI) Render(ctx context.Context, req Request) error {
	for label, value := range map[string]string{
		"template path": req.TemplatePath,
		"audio path":    req.AudioPath,
		"caption text":  req.CaptionText,
		"output path":   req.OutputPath,
	} {
		if strings.TrimSpace(value) == "" {
			return services.Wrap(services.ErrRenderFailed, "render", "render", "empty "+label, nil)
		}
	}

	args := []string{req.TemplatePath, req.AudioPath, req.CaptionText, req.OutputPath}
	if c.fontSize > 0 {
		args = append(args, strconv.Itoa(c.fontSize))
		if c.color != "" {
			args = append(args, c.color)
		}
	}

	cmd := commandContext(ctx, c.command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = "no diagnostic output"
		}
		return services.Wrap(services.ErrRenderFailed, "render", "run renderer", detail, err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
