// Package cmd provides the rc_admin commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/revenue_cycle_app/internal/platform/config"
	"github.com/spf13/cobra"
)

var debug bool

// logger is set up by the root command before any subcommand runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "rc_admin",
	Short: "Maintenance tasks for the revenue cycle backend",
	Long: `rc_admin runs the maintenance tasks the API server does not perform on its own.

Example:
  rc_admin migrate up
  rc_admin migrate down --steps 1
  rc_admin seed-accounts --file configs/chart_of_accounts.yaml
  rc_admin check-accounts`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAccountsCmd)
	rootCmd.AddCommand(checkAccountsCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func requirePostgres(cfg *config.Config) error {
	if cfg.StorageDriver != config.StoragePostgres {
		return fmt.Errorf("command needs STORAGE_DRIVER=%s, got %q", config.StoragePostgres, cfg.StorageDriver)
	}
	return nil
}
