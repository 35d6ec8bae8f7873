package voice

import (
	"errors"

	"stopwatch/internal/core/model"
)

// ErrSpeechUnsupported indicates no speech recognizer is available on this host.
var ErrSpeechUnsupported = errors.New("speech recognition unsupported")

// ErrSessionRunning indicates Start was called on a session that has not been stopped.
var ErrSessionRunning = errors.New("speech session already running")

// Result is one entry of a recognition result set.
type Result struct {
	Transcript string
	Final      bool
}

// Handlers receive session callbacks.
type Handlers struct {
	OnResult func(results []Result)
	OnError  func(code string)
	OnEnd    func()
}

// Session is one continuous-recognition run.
//
// Implementations must not invoke handlers synchronously from Start or Stop.
type Session interface {
	Start() error
	Stop() error
}

// Capability opens speech sessions.
type Capability interface {
	Supported() bool
	NewSession(config model.VoiceConfig, handlers Handlers) (Session, error)
}

// Controller is the set of stopwatch operations voice commands can drive.
type Controller interface {
	Start()
	Pause()
	Reset()
	RecordLap()
}

// StatusSink receives human-readable router status.
type StatusSink interface {
	SetText(text string)
}

// Affordance is the on/off control for voice input.
type Affordance interface {
	SetLabel(label string)
	SetActive(active bool)
}

// Affordances fans label and state changes out to every control that
// mirrors voice input, such as a window button and a tray entry.
func Affordances(controls ...Affordance) Affordance {
	return affordanceGroup(controls)
}

type affordanceGroup []Affordance

func (group affordanceGroup) SetLabel(label string) {
	for _, control := range group {
		if control != nil {
			control.SetLabel(label)
		}
	}
}

func (group affordanceGroup) SetActive(active bool) {
	for _, control := range group {
		if control != nil {
			control.SetActive(active)
		}
	}
}
