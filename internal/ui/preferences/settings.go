package preferences

import (
	"time"

	"stopwatch/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	TickInterval time.Duration

	DarkMode        bool
	BackgroundColor string
	TextColor       string
	ButtonColor     string

	SpeechCommand  string
	SpeechLocale   string
	Continuous     bool
	InterimResults bool
}

// DefaultSettings returns default settings for the stopwatch.
func DefaultSettings() Settings {
	return Settings{
		TickInterval:   10 * time.Millisecond,
		DarkMode:       false,
		SpeechLocale:   "en-US",
		Continuous:     true,
		InterimResults: false,
	}
}

// TrackerConfig converts settings to the tracker configuration.
func (settings Settings) TrackerConfig() model.TrackerConfig {
	return model.TrackerConfig{TickInterval: settings.TickInterval}
}

// VoiceConfig converts settings to the speech session configuration.
func (settings Settings) VoiceConfig() model.VoiceConfig {
	return model.VoiceConfig{
		Locale:         settings.SpeechLocale,
		Continuous:     settings.Continuous,
		InterimResults: settings.InterimResults,
	}
}
