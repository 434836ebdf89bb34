package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	CorpusFile    string `toml:"corpus_file"`
	WorkspaceDir  string `toml:"workspace_dir"`
	VideoTemplate string `toml:"video_template"`
	StateFile     string `toml:"state_file"`
	RunLogDB      string `toml:"runlog_db"`
	LogDir        string `toml:"log_dir"`
}

// LLM contains settings for the chat-completion collaborator that writes
// titles and descriptions.
type LLM struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Narration contains settings for the text-to-speech collaborator.
type Narration struct {
	Command  string `toml:"command"`
	Voice    string `toml:"voice"`
	Language string `toml:"language"`
}

// Render contains settings for the video rendering collaborator.
type Render struct {
	Command       string `toml:"command"`
	FontSize      int    `toml:"font_size"`
	SubtitleColor string `toml:"subtitle_color"`
}

// Split contains settings for the media splitting collaborator.
type Split struct {
	Command string `toml:"command"`
}

// Publish contains settings for uploading finished artifacts.
type Publish struct {
	Command      string `toml:"command"`
	Category     string `toml:"category"`
	Privacy      string `toml:"privacy"`
	PlaylistID   string `toml:"playlist_id"`
	SeriesPrefix string `toml:"series_prefix"`
	Concurrent   bool   `toml:"concurrent"`
	DelaySeconds int    `toml:"delay_seconds"`
}

// Pipeline contains run-level tuning knobs.
type Pipeline struct {
	MaxRetries      int     `toml:"max_retries"`
	MinVideoSeconds float64 `toml:"min_video_seconds"`
	MaxVideoSeconds float64 `toml:"max_video_seconds"`
	SecondsPerWord  float64 `toml:"seconds_per_word"`
	SettleSeconds   int     `toml:"settle_seconds"`
	Debug           bool    `toml:"debug"`
}

// Notifications contains settings for the fire-and-forget webhook notifier.
type Notifications struct {
	URL            string `toml:"url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for brainrot.
//
// Sections by subsystem:
//   - Paths: corpus, workspace, template, state and log locations
//   - LLM: chat-completion endpoint for metadata generation
//   - Narration / Render / Split / Publish: external collaborators
//   - Pipeline: retry bounds, duration gates, debug flag
//   - Notifications: webhook notifier
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	LLM           LLM           `toml:"llm"`
	Narration     Narration     `toml:"narration"`
	Render        Render        `toml:"render"`
	Split         Split         `toml:"split"`
	Publish       Publish       `toml:"publish"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/brainrot/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("brainrot.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs. The workspace is
// required; the log directory is best effort so a missing log volume does not
// block a run.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.WorkspaceDir, 0o755); err != nil {
		return fmt.Errorf("create workspace %q: %w", c.Paths.WorkspaceDir, err)
	}
	for _, file := range []string{c.Paths.StateFile, c.Paths.RunLogDB} {
		if dir := filepath.Dir(strings.TrimSpace(file)); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create directory %q: %w", dir, err)
			}
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		_ = os.MkdirAll(c.Paths.LogDir, 0o755)
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable name used for duration probing.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
