package main

import (
	"fmt"
	"os"
	"time"

	"stopwatch/internal/storage"
	"stopwatch/internal/ui/preferences"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	appName = "stopwatch"
	appID   = "com.stopwatch.app"
	version = "0.1.0"
)

type options struct {
	configPath string
	logLevel   string
	tick       time.Duration
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Stopwatch with laps and voice control",
		Long: `A stopwatch measuring elapsed time with lap splits.

Voice control listens for "start", "pause", "reset" and "lap" through an
external recognizer command configured in the settings file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Settings file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().DurationVar(&opts.tick, "tick", 0, "Display refresh interval, overrides settings")

	cmd.AddCommand(consoleCmd(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, version)
		},
	})

	return cmd
}

// loadSettings resolves the settings path and loads the persisted settings.
// Flag overrides are applied separately so they never reach the file.
func loadSettings(opts *options, logger *zap.Logger) (preferences.Settings, string) {
	path := opts.configPath
	if path == "" {
		resolved, err := storage.ConfigPath(appName)
		if err != nil {
			logger.Warn("settings path unavailable, using defaults", zap.Error(err))
			return preferences.DefaultSettings(), ""
		}
		path = resolved
	}

	settings, err := storage.LoadSettings(path)
	if err != nil {
		logger.Warn("load settings", zap.String("path", path), zap.Error(err))
	}
	return settings, path
}

// applyOverrides returns a copy of settings with one-off flag values applied.
func applyOverrides(settings preferences.Settings, opts *options) preferences.Settings {
	if opts.tick > 0 {
		settings.TickInterval = opts.tick
	}
	return settings
}
