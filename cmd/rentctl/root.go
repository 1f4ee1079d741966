package main

import (
	"github.com/rentdesk/backend/internal/app"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rentctl",
	Short: "Manage rooms, bills and users of a rentdesk installation",
	Long: `rentctl shares the server's configuration (config.toml and RENT_* variables)
and talks to the same database. Logs go to stderr; command output goes to stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at info level instead of warn")
}

// openApp loads configuration and wires the application. The caller must Close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := "warn"
	if verbose {
		level = "info"
	}
	log, err := logger.New(&logger.Config{
		Level:  level,
		Format: "console",
		Output: "stderr",
	})
	if err != nil {
		return nil, err
	}

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

func closeApp(a *app.App) {
	_ = a.Close()
	_ = a.Logger.Sync()
}
