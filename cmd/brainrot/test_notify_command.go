package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"brainrot/internal/notifications"
)

func newTestNotifyCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			service := notifications.NewHTTPService(cfg.Notifications.URL,
				time.Duration(cfg.Notifications.RequestTimeout)*time.Second, nil)
			if err := service.Test(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
