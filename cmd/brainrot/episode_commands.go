package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"brainrot/internal/episode"
)

func newEpisodeCommand(cmdCtx *commandContext) *cobra.Command {
	episodeCmd := &cobra.Command{
		Use:   "episode",
		Short: "Inspect or adjust the episode counter",
	}

	episodeCmd.AddCommand(newEpisodeShowCommand(cmdCtx))
	episodeCmd.AddCommand(newEpisodeSetCommand(cmdCtx))

	return episodeCmd
}

func newEpisodeShowCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the last published episode number",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			current, err := episode.NewFileStore(cfg.Paths.StateFile).Current()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Episode %d (next run publishes #%d)\n", current, current+1)
			return nil
		},
	}
}

func newEpisodeSetCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <number>",
		Short: "Set the episode counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse episode number %q: %w", args[0], err)
			}
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if err := episode.NewFileStore(cfg.Paths.StateFile).Set(value); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Episode counter set to %d\n", value)
			return nil
		},
	}
}
