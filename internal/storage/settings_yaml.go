package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stopwatch/internal/ui/palette"
	"stopwatch/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	TickIntervalMillis int    `yaml:"tick_interval_ms"`
	DarkMode           bool   `yaml:"dark_mode"`
	BackgroundColor    string `yaml:"background_color,omitempty"`
	TextColor          string `yaml:"text_color,omitempty"`
	ButtonColor        string `yaml:"button_color,omitempty"`
	SpeechCommand      string `yaml:"speech_command,omitempty"`
	SpeechLocale       string `yaml:"speech_locale,omitempty"`
	Continuous         *bool  `yaml:"continuous,omitempty"`
	InterimResults     bool   `yaml:"interim_results"`
}

// ConfigPath returns the settings file location for appName.
func ConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	continuous := settings.Continuous
	fileData := yamlSettings{
		TickIntervalMillis: int(settings.TickInterval / time.Millisecond),
		DarkMode:           settings.DarkMode,
		BackgroundColor:    settings.BackgroundColor,
		TextColor:          settings.TextColor,
		ButtonColor:        settings.ButtonColor,
		SpeechCommand:      settings.SpeechCommand,
		SpeechLocale:       settings.SpeechLocale,
		Continuous:         &continuous,
		InterimResults:     settings.InterimResults,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.TickIntervalMillis > 0 {
		settings.TickInterval = time.Duration(fileData.TickIntervalMillis) * time.Millisecond
	}

	settings.DarkMode = fileData.DarkMode
	settings.BackgroundColor = validColor(fileData.BackgroundColor)
	settings.TextColor = validColor(fileData.TextColor)
	settings.ButtonColor = validColor(fileData.ButtonColor)

	settings.SpeechCommand = fileData.SpeechCommand
	if fileData.SpeechLocale != "" {
		settings.SpeechLocale = fileData.SpeechLocale
	}
	if fileData.Continuous != nil {
		settings.Continuous = *fileData.Continuous
	}
	settings.InterimResults = fileData.InterimResults
}

func validColor(value string) string {
	if _, err := palette.ParseHex(value); err != nil {
		return ""
	}
	return value
}
