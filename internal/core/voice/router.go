package voice

import (
	"errors"
	"sync"

	"stopwatch/internal/core/model"

	"go.uber.org/zap"
)

// State represents the Router lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateUnsupported   State = "unsupported"
	StateInactive      State = "inactive"
	StateActive        State = "active"
)

// Router maps recognized speech to stopwatch operations and keeps
// continuous recognition alive while active.
type Router struct {
	mu         sync.Mutex
	config     model.VoiceConfig
	capability Capability
	controller Controller
	status     StatusSink
	button     Affordance
	logger     *zap.Logger
	state      State
	session    Session
	restarts   int
}

// New creates a Router. Initialize must be called before Toggle has any effect.
func New(config model.VoiceConfig, capability Capability, controller Controller, status StatusSink, button Affordance, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if status == nil {
		status = nopStatus{}
	}
	if button == nil {
		button = nopAffordance{}
	}
	return &Router{
		config:     config,
		capability: capability,
		controller: controller,
		status:     status,
		button:     button,
		logger:     logger,
		state:      StateUninitialized,
	}
}

// Initialize probes the speech capability and prepares a session.
// An unsupported host leaves the router permanently unsupported.
func (router *Router) Initialize() {
	router.mu.Lock()
	defer router.mu.Unlock()
	if router.state != StateUninitialized {
		return
	}

	if router.capability == nil || !router.capability.Supported() {
		router.state = StateUnsupported
		router.status.SetText(StatusUnsupported)
		router.logger.Info("speech recognition unavailable")
		return
	}

	session, err := router.capability.NewSession(router.config, Handlers{
		OnResult: router.handleResult,
		OnError:  router.handleError,
		OnEnd:    router.handleEnd,
	})
	if err != nil {
		router.state = StateUnsupported
		router.status.SetText(StatusUnsupported)
		router.logger.Warn("create speech session", zap.Error(err))
		return
	}

	router.session = session
	router.state = StateInactive
	router.button.SetLabel(LabelTurnOn)
	router.button.SetActive(false)
}

// Toggle switches voice control on or off.
func (router *Router) Toggle() {
	router.mu.Lock()
	defer router.mu.Unlock()

	switch router.state {
	case StateInactive:
		if err := router.session.Start(); err != nil {
			router.logger.Warn("start speech session", zap.Error(err))
			router.status.SetText(errorStatus(err.Error()))
			return
		}
		router.state = StateActive
		router.status.SetText(StatusActive)
		router.button.SetLabel(LabelTurnOff)
		router.button.SetActive(true)
	case StateActive:
		router.deactivateLocked()
	case StateUnsupported:
		router.status.SetText(StatusUnsupported)
	}
}

// Close stops an active session without restarting it.
func (router *Router) Close() {
	router.mu.Lock()
	defer router.mu.Unlock()
	if router.state == StateActive {
		router.deactivateLocked()
	}
}

// State returns the current lifecycle state.
func (router *Router) State() State {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.state
}

// Active reports whether continuous recognition should be running.
func (router *Router) Active() bool {
	return router.State() == StateActive
}

// Restarts returns how many times an ended session was re-established.
func (router *Router) Restarts() int {
	router.mu.Lock()
	defer router.mu.Unlock()
	return router.restarts
}

func (router *Router) deactivateLocked() {
	router.state = StateInactive
	if err := router.session.Stop(); err != nil {
		router.logger.Warn("stop speech session", zap.Error(err))
	}
	router.status.SetText(StatusOff)
	router.button.SetLabel(LabelTurnOn)
	router.button.SetActive(false)
}

// handleResult dispatches under the lock so a result that races Toggle
// never reaches the controller once voice control is off.
func (router *Router) handleResult(results []Result) {
	if len(results) == 0 {
		return
	}
	router.mu.Lock()
	defer router.mu.Unlock()
	if router.state != StateActive {
		router.logger.Debug("dropping speech result while inactive")
		return
	}
	last := results[len(results)-1]
	if !last.Final && !router.config.InterimResults {
		return
	}
	router.dispatch(Normalize(last.Transcript))
}

func (router *Router) dispatch(transcript string) {
	command, ok := Match(transcript)
	if !ok {
		router.logger.Debug("voice command not recognized", zap.String("transcript", transcript))
		router.status.SetText(rejectedStatus(transcript))
		return
	}

	router.logger.Debug("voice command", zap.String("command", string(command)))
	command.Apply(router.controller)
	router.status.SetText(acceptedStatus(command))
}

func (router *Router) handleError(code string) {
	router.logger.Warn("voice recognition error", zap.String("code", code))
	router.status.SetText(errorStatus(code))
}

// handleEnd runs the Active -> Ended -> Active transition while active.
func (router *Router) handleEnd() {
	router.mu.Lock()
	defer router.mu.Unlock()

	if router.state != StateActive {
		router.status.SetText(StatusOff)
		return
	}

	if err := router.session.Start(); err != nil {
		if errors.Is(err, ErrSessionRunning) {
			// A newer run is already up; this end belongs to a stopped one.
			router.logger.Debug("speech session already restarted")
			return
		}
		router.logger.Warn("restart speech session", zap.Error(err))
		router.state = StateInactive
		router.status.SetText(errorStatus(err.Error()))
		router.button.SetLabel(LabelTurnOn)
		router.button.SetActive(false)
		return
	}
	router.restarts++
	router.logger.Debug("speech session restarted", zap.Int("restarts", router.restarts))
}

type nopStatus struct{}

func (nopStatus) SetText(string) {}

type nopAffordance struct{}

func (nopAffordance) SetLabel(string) {}
func (nopAffordance) SetActive(bool)  {}
