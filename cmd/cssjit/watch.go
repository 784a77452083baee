package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssjit"
	"github.com/yacobolo/cssjit/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever sources change",
	Long: `Generate once, then watch the project root and regenerate after
changes settle. Unchanged files are served from an in-memory cache.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildConfig()
		logger := newLogger()
		config.Logger = &logger

		debounce, _ := cmd.Flags().GetDuration("debounce")
		quiet := getBoolWithFallback("quiet", false)
		reporter := report.NewReporter(os.Stdout, useColors())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info().Str("root", config.Root).Msg("watching for changes")
		return cssjit.Watch(ctx, config, cssjit.WatchOptions{
			Debounce: debounce,
			OnResult: func(result *cssjit.GenerateResult, err error) {
				if quiet {
					return
				}
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						reporter.PrintError(err)
					}
					return
				}
				printResult(result)
			},
		})
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", cssjit.DefaultDebounce, "Quiet period before regenerating")
}
