package main

import (
	"context"

	"github.com/spf13/cobra"

	appLog "termcal/internal/log"
	"termcal/internal/pipeline"
	"termcal/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Publish the term calendar over HTTP",
	Long: `Build the calendar from the config selections and serve it at
/calendar.ics and /api/occurrences. The grid is rebuilt on the "refresh"
cron schedule.`,
	RunE: runServe,
}

var listen string

func init() {
	serveCmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config if set)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if listen != "" {
		cfg.Listen = listen
	}
	ctx, cancel := signalContext()
	defer cancel()

	preset := presetFromConfig(cfg)
	s := web.NewServer(cfg, func(ctx context.Context) (*pipeline.Output, error) {
		return build(ctx, preset)
	})
	err := web.Run(ctx, s)
	appLog.Info("termcal server stopped")
	return err
}
