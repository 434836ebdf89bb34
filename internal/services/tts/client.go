package tts

import (
	"context"
	"os/exec"
	"strings"

	"brainrot/internal/services"
)

var commandContext = exec.CommandContext

// Client defines narration synthesis behaviour.
type Client interface {
	Synthesize(ctx context.Context, text, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithVoice selects the synthesis voice.
func WithVoice(voice string) Option {
	return func(c *CLI) {
		c.voice = strings.TrimSpace(voice)
	}
}

// WithLanguage selects the synthesis language or model code.
func WithLanguage(language string) Option {
	return func(c *CLI) {
		c.language = strings.TrimSpace(language)
	}
}

// CLI wraps the text-to-speech command-line collaborator.
type CLI struct {
	command  string
	voice    string
	language string
}

// NewCLI constructs a CLI client for the given command.
func NewCLI(command string, opts ...Option) *CLI {
	cli := &CLI{command: command}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Synthesize runs the collaborator to produce a narration file at outputPath.
// The voice argument is only passed when set, and the language only when a
// voice is also set, matching the collaborator's positional contract.
func (c *CLI) Synthesize(ctx context.Context, text, outputPath string) error {
	if strings.TrimSpace(text) == "" {
		return services.Wrap(services.ErrSynthesisFailed, "narration", "synthesize", "empty text", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return services.Wrap(services.ErrSynthesisFailed, "narration", "synthesize", "empty output path", nil)
	}

	args := []string{text, outputPath}
	if c.voice != "" {
		args = append(args, c.voice)
		if c.language != "" {
			args = append(args, c.language)
		}
	}

	cmd := commandContext(ctx, c.command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = "no diagnostic output"
		}
		return services.Wrap(services.ErrSynthesisFailed, "narration", "run tts", detail, err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
