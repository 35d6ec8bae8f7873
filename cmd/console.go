package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stopwatch/internal/console"
	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/voice"
	"stopwatch/internal/logging"
	"stopwatch/internal/platform"

	"github.com/spf13/cobra"
)

func consoleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run the stopwatch in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), opts)
		},
	}
}

func runConsole(parent context.Context, opts *options) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	term, err := console.New()
	if err != nil {
		return err
	}

	// Log lines go through the prompt-aware writer so they do not tear the prompt.
	logger := logging.NewConsole(opts.logLevel, term.Stderr())
	defer func() {
		_ = logger.Sync()
	}()

	settings, _ := loadSettings(opts, logger)

	tracker := stopwatch.New(stopwatch.Config{TrackerConfig: applyOverrides(settings, opts).TrackerConfig()}, term.DisplaySink(), term.LapSink())
	defer tracker.Close()

	capability := platform.NewSpeechCapability(settings.SpeechCommand, logger)
	router := voice.New(settings.VoiceConfig(), capability, tracker, term.StatusSink(), term.VoiceAffordance(), logger)
	defer router.Close()

	term.Bind(tracker, router)
	router.Initialize()

	return term.Run(ctx)
}
