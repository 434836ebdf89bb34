package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeCollaborators()
	c.normalizePublish()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.CorpusFile, err = expandPath(c.Paths.CorpusFile); err != nil {
		return fmt.Errorf("paths.corpus_file: %w", err)
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if c.Paths.VideoTemplate, err = expandPath(c.Paths.VideoTemplate); err != nil {
		return fmt.Errorf("paths.video_template: %w", err)
	}
	if c.Paths.StateFile, err = expandPath(c.Paths.StateFile); err != nil {
		return fmt.Errorf("paths.state_file: %w", err)
	}
	if c.Paths.RunLogDB, err = expandPath(c.Paths.RunLogDB); err != nil {
		return fmt.Errorf("paths.runlog_db: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("BRAINROT_LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeCollaborators() {
	c.Narration.Command = strings.TrimSpace(c.Narration.Command)
	c.Narration.Voice = strings.TrimSpace(c.Narration.Voice)
	c.Narration.Language = strings.TrimSpace(c.Narration.Language)
	c.Render.Command = strings.TrimSpace(c.Render.Command)
	c.Render.SubtitleColor = strings.TrimSpace(c.Render.SubtitleColor)
	if c.Render.FontSize <= 0 {
		c.Render.FontSize = defaultFontSize
	}
	c.Split.Command = strings.TrimSpace(c.Split.Command)
}

func (c *Config) normalizePublish() {
	c.Publish.Command = strings.TrimSpace(c.Publish.Command)
	c.Publish.Category = strings.TrimSpace(c.Publish.Category)
	c.Publish.Privacy = strings.ToLower(strings.TrimSpace(c.Publish.Privacy))
	if c.Publish.Privacy == "" {
		c.Publish.Privacy = defaultPrivacy
	}
	c.Publish.PlaylistID = strings.TrimSpace(c.Publish.PlaylistID)
	c.Publish.SeriesPrefix = strings.TrimSpace(c.Publish.SeriesPrefix)
	if c.Publish.SeriesPrefix == "" {
		c.Publish.SeriesPrefix = defaultSeriesPrefix
	}
	if c.Publish.DelaySeconds < 0 {
		c.Publish.DelaySeconds = 0
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.URL = strings.TrimSpace(c.Notifications.URL)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
