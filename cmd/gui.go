package main

import (
	"context"
	"image/color"

	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/voice"
	"stopwatch/internal/logging"
	"stopwatch/internal/platform"
	"stopwatch/internal/storage"
	"stopwatch/internal/ui/palette"
	"stopwatch/internal/ui/panel"
	"stopwatch/internal/ui/preferences"
	"stopwatch/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"
)

func runGUI(opts *options) error {
	logger := logging.New(opts.logLevel)
	defer func() {
		_ = logger.Sync()
	}()

	guard, err := platform.AcquireSingleInstance(appID)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, settingsPath := loadSettings(opts, logger)
	save := func() {
		if settingsPath == "" {
			return
		}
		if err := storage.SaveSettings(settingsPath, settings); err != nil {
			logger.Warn("save settings", zap.Error(err))
		}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())
	window := panel.New(fyneApp, "Stopwatch")

	tracker := stopwatch.New(stopwatch.Config{TrackerConfig: applyOverrides(settings, opts).TrackerConfig()}, window.DisplaySink(), window.LapSink())
	var router *voice.Router
	toggleVoice := func() {
		router.Toggle()
	}

	applyTheme := func() {
		window.ApplyPalette(palette.FromHex(settings.DarkMode, settings.BackgroundColor, settings.TextColor, settings.ButtonColor))
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		applyTheme()
		save()
	})

	var trayManager *tray.Manager
	window.SetCallbacks(panel.Callbacks{
		OnStart:       tracker.Start,
		OnPause:       tracker.Pause,
		OnReset:       tracker.Reset,
		OnLap:         tracker.RecordLap,
		OnToggleVoice: toggleVoice,
		OnToggleTheme: func() {
			settings.DarkMode = !settings.DarkMode
			applyTheme()
			save()
		},
		OnColorChange: func(target panel.ColorTarget, value color.Color) {
			hex := palette.FormatHex(value)
			switch target {
			case panel.ColorBackground:
				settings.BackgroundColor = hex
			case panel.ColorText:
				settings.TextColor = hex
			case panel.ColorButton:
				settings.ButtonColor = hex
			}
			applyTheme()
			save()
		},
		OnPreferences: func() {
			prefsWindow.UpdateSettings(settings)
			prefsWindow.Show()
		},
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: window.Show,
			OnStartPause: func() {
				if tracker.Running() {
					tracker.Pause()
				} else {
					tracker.Start()
				}
			},
			OnReset:       tracker.Reset,
			OnLap:         tracker.RecordLap,
			OnToggleVoice: toggleVoice,
			OnQuit:        fyneApp.Quit,
		})
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	affordance := window.VoiceAffordance()
	if trayManager != nil {
		affordance = voice.Affordances(affordance, trayManager.VoiceAffordance())
	}
	capability := platform.NewSpeechCapability(settings.SpeechCommand, logger)
	router = voice.New(settings.VoiceConfig(), capability, tracker, window.StatusSink(), affordance, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if settingsPath != "" {
		err := storage.Watch(ctx, settingsPath, logger, func(reloaded preferences.Settings) {
			fyne.Do(func() {
				settings.DarkMode = reloaded.DarkMode
				settings.BackgroundColor = reloaded.BackgroundColor
				settings.TextColor = reloaded.TextColor
				settings.ButtonColor = reloaded.ButtonColor
				applyTheme()
			})
		})
		if err != nil {
			logger.Warn("watch settings", zap.Error(err))
		}
	}

	events := tracker.Subscribe(16)
	go func() {
		for event := range events {
			logger.Debug("stopwatch event", zap.String("type", string(event.Type)), zap.String("display", event.Display))
			if trayManager == nil {
				continue
			}
			fyne.Do(func() {
				trayManager.Observe(event)
			})
		}
	}()

	fyneApp.Lifecycle().SetOnStopped(func() {
		router.Close()
		tracker.Close()
	})

	applyTheme()
	router.Initialize()
	window.ShowAndRun()
	return nil
}
