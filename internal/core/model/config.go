package model

import "time"

// TrackerConfig contains runtime settings for the elapsed-time tracker.
type TrackerConfig struct {
	TickInterval time.Duration
}

// VoiceConfig describes how a speech session is opened.
type VoiceConfig struct {
	Locale         string
	Continuous     bool
	InterimResults bool
}
