package config

const (
	defaultCorpusFile     = "~/.local/share/brainrot/inputs/confessions.csv"
	defaultWorkspaceDir   = "~/.local/share/brainrot/output"
	defaultVideoTemplate  = "~/.local/share/brainrot/inputs/input.mp4"
	defaultStateFile      = "~/.local/share/brainrot/episode.json"
	defaultRunLogDB       = "~/.local/share/brainrot/runlog.db"
	defaultLogDir         = "~/.local/share/brainrot/logs"
	defaultLLMBaseURL     = "http://localhost:11434/v1/chat/completions"
	defaultLLMModel       = "artifish/llama3.2-uncensored"
	defaultLLMTimeout     = 60
	defaultNarrationCmd   = "brainrot-tts"
	defaultNarrationVoice = "af_bella"
	defaultNarrationLang  = "a"
	defaultRenderCmd      = "brainrot-render"
	defaultFontSize       = 48
	defaultSubtitleColor  = "white"
	defaultSplitCmd       = "brainrot-split"
	defaultPublishCmd     = "brainrot-upload"
	defaultCategory       = "22"
	defaultPrivacy        = "public"
	defaultSeriesPrefix   = "Reddit Confessions"
	defaultPublishDelay   = 5
	defaultMaxRetries     = 3
	defaultMinVideoSecs   = 30.0
	defaultMaxVideoSecs   = 60.0
	defaultSecondsPerWord = 0.45
	defaultSettleSeconds  = 2
	defaultNotifyTimeout  = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CorpusFile:    defaultCorpusFile,
			WorkspaceDir:  defaultWorkspaceDir,
			VideoTemplate: defaultVideoTemplate,
			StateFile:     defaultStateFile,
			RunLogDB:      defaultRunLogDB,
			LogDir:        defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Narration: Narration{
			Command:  defaultNarrationCmd,
			Voice:    defaultNarrationVoice,
			Language: defaultNarrationLang,
		},
		Render: Render{
			Command:       defaultRenderCmd,
			FontSize:      defaultFontSize,
			SubtitleColor: defaultSubtitleColor,
		},
		Split: Split{
			Command: defaultSplitCmd,
		},
		Publish: Publish{
			Command:      defaultPublishCmd,
			Category:     defaultCategory,
			Privacy:      defaultPrivacy,
			SeriesPrefix: defaultSeriesPrefix,
			Concurrent:   true,
			DelaySeconds: defaultPublishDelay,
		},
		Pipeline: Pipeline{
			MaxRetries:      defaultMaxRetries,
			MinVideoSeconds: defaultMinVideoSecs,
			MaxVideoSeconds: defaultMaxVideoSecs,
			SecondsPerWord:  defaultSecondsPerWord,
			SettleSeconds:   defaultSettleSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
