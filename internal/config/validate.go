package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCollaborators(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CorpusFile) == "" {
		return errors.New("paths.corpus_file must be set")
	}
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		return errors.New("paths.workspace_dir must be set")
	}
	if strings.TrimSpace(c.Paths.VideoTemplate) == "" {
		return errors.New("paths.video_template must be set")
	}
	if strings.TrimSpace(c.Paths.StateFile) == "" {
		return errors.New("paths.state_file must be set")
	}
	return nil
}

func (c *Config) validateCollaborators() error {
	for name, value := range map[string]string{
		"narration.command": c.Narration.Command,
		"render.command":    c.Render.Command,
		"split.command":     c.Split.Command,
		"publish.command":   c.Publish.Command,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.MaxRetries <= 0 {
		return errors.New("pipeline.max_retries must be positive")
	}
	if c.Pipeline.MinVideoSeconds <= 0 {
		return errors.New("pipeline.min_video_seconds must be positive")
	}
	if c.Pipeline.MaxVideoSeconds <= 0 {
		return errors.New("pipeline.max_video_seconds must be positive")
	}
	if c.Pipeline.MaxVideoSeconds < c.Pipeline.MinVideoSeconds {
		return errors.New("pipeline.max_video_seconds must not be less than pipeline.min_video_seconds")
	}
	if c.Pipeline.SecondsPerWord <= 0 {
		return errors.New("pipeline.seconds_per_word must be positive")
	}
	if c.Pipeline.SettleSeconds < 0 {
		return errors.New("pipeline.settle_seconds must not be negative")
	}
	return nil
}

func (c *Config) validatePublish() error {
	switch c.Publish.Privacy {
	case "public", "unlisted", "private":
	default:
		return fmt.Errorf("publish.privacy must be public, unlisted, or private (got %q)", c.Publish.Privacy)
	}
	if strings.TrimSpace(c.Publish.Category) == "" {
		return errors.New("publish.category must be set")
	}
	return nil
}
