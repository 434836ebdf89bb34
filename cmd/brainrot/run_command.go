package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"brainrot/internal/acquisition"
	"brainrot/internal/config"
	"brainrot/internal/corpus"
	"brainrot/internal/episode"
	"brainrot/internal/logging"
	"brainrot/internal/metadata"
	"brainrot/internal/notifications"
	"brainrot/internal/runlog"
	"brainrot/internal/services/llm"
	"brainrot/internal/services/renderer"
	"brainrot/internal/services/splitter"
	"brainrot/internal/services/tts"
	"brainrot/internal/services/uploader"
	"brainrot/internal/workflow"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Produce and publish one episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if debug {
				cfg.Pipeline.Debug = true
			}

			lock := flock.New(filepath.Join(cfg.Paths.LogDir, "brainrot.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another brainrot run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			driver, closeDeps, err := buildDriver(cfg, logger)
			if err != nil {
				return err
			}
			defer closeDeps()

			result, err := driver.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Published {
				fmt.Fprintf(out, "Published episode %d (%s, %.1fs, %d part(s))\n",
					result.Episode, result.Route, result.DurationSeconds, result.Parts)
			} else {
				fmt.Fprintf(out, "Debug run complete for episode %d (%s, %.1fs, %d part(s)); nothing published\n",
					result.Episode, result.Route, result.DurationSeconds, result.Parts)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Run the full pipeline without publishing or advancing the episode counter")
	return cmd
}

func buildDriver(cfg *config.Config, logger *slog.Logger) (*workflow.Driver, func(), error) {
	sampler := corpus.NewSampler(cfg.Paths.CorpusFile)
	completer := llm.NewClient(llm.Config{
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		APIKey:         cfg.LLM.APIKey,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	}, llm.WithRetryMaxAttempts(cfg.Pipeline.MaxRetries))
	generator := metadata.NewGenerator(completer)
	acquirer := acquisition.NewLoop(sampler, generator,
		cfg.Pipeline.MaxRetries, cfg.Pipeline.MinVideoSeconds, cfg.Pipeline.SecondsPerWord, logger)

	narrator := tts.NewCLI(cfg.Narration.Command,
		tts.WithVoice(cfg.Narration.Voice),
		tts.WithLanguage(cfg.Narration.Language))
	render := renderer.NewCLI(cfg.Render.Command,
		renderer.WithFontSize(cfg.Render.FontSize),
		renderer.WithSubtitleColor(cfg.Render.SubtitleColor))
	split := splitter.NewCLI(cfg.Split.Command)
	upload := uploader.NewCLI(cfg.Publish.Command, logger)
	fanout := workflow.NewFanout(upload,
		cfg.Publish.Concurrent,
		time.Duration(cfg.Publish.DelaySeconds)*time.Second,
		cfg.Publish.Category, cfg.Publish.Privacy, cfg.Publish.PlaylistID,
		logger)

	notifier := notifications.NewHTTPService(cfg.Notifications.URL,
		time.Duration(cfg.Notifications.RequestTimeout)*time.Second, logger)

	ledger, err := runlog.Open(cfg.Paths.RunLogDB)
	if err != nil {
		return nil, nil, fmt.Errorf("open run log: %w", err)
	}

	driver := workflow.NewDriver(cfg, workflow.Deps{
		Acquirer: acquirer,
		Narrator: narrator,
		Renderer: render,
		Splitter: split,
		Fanout:   fanout,
		Episodes: episode.NewFileStore(cfg.Paths.StateFile),
		Notifier: notifier,
		Ledger:   ledger,
	}, logger)

	return driver, func() { _ = ledger.Close() }, nil
}
