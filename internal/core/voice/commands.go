package voice

import (
	"fmt"
	"strings"
)

// Command is a recognized voice command word.
type Command string

const (
	CommandStart Command = "start"
	CommandPause Command = "pause"
	CommandReset Command = "reset"
	CommandLap   Command = "lap"
)

// Vocabulary lists the accepted command words.
var Vocabulary = []Command{CommandStart, CommandPause, CommandReset, CommandLap}

// Status texts.
const (
	StatusUnsupported = "Speech recognition not supported."
	StatusOff         = "Voice control is off"
	StatusActive      = `Voice control is active. Say "start", "pause", "reset", or "lap".`
)

// Toggle labels.
const (
	LabelTurnOn  = "Start Voice Control"
	LabelTurnOff = "Stop Voice Control"
)

// Normalize lower-cases and trims a transcript.
func Normalize(transcript string) string {
	return strings.ToLower(strings.TrimSpace(transcript))
}

// Match returns the command a transcript names exactly, after normalization.
func Match(transcript string) (Command, bool) {
	normalized := Normalize(transcript)
	for _, command := range Vocabulary {
		if normalized == string(command) {
			return command, true
		}
	}
	return "", false
}

// Apply invokes the controller operation for command.
func (command Command) Apply(controller Controller) {
	switch command {
	case CommandStart:
		controller.Start()
	case CommandPause:
		controller.Pause()
	case CommandReset:
		controller.Reset()
	case CommandLap:
		controller.RecordLap()
	}
}

func acceptedStatus(command Command) string {
	return fmt.Sprintf("Command \"%s\"", command)
}

func rejectedStatus(transcript string) string {
	return fmt.Sprintf("Command \"%s\" not recognized.", transcript)
}

func errorStatus(code string) string {
	return fmt.Sprintf("Voice recognition error: %s", code)
}
