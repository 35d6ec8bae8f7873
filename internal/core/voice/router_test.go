package voice

import (
	"errors"
	"testing"

	"stopwatch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSession struct {
	mock.Mock
}

func (session *mockSession) Start() error {
	args := session.Called()
	return args.Error(0)
}

func (session *mockSession) Stop() error {
	args := session.Called()
	return args.Error(0)
}

// scriptedCapability hands out a single session and keeps its handlers so
// tests can feed results, errors and end events.
type scriptedCapability struct {
	supported  bool
	session    Session
	sessionErr error
	handlers   Handlers
	config     model.VoiceConfig
	created    int
}

func (capability *scriptedCapability) Supported() bool {
	return capability.supported
}

func (capability *scriptedCapability) NewSession(config model.VoiceConfig, handlers Handlers) (Session, error) {
	capability.created++
	capability.config = config
	capability.handlers = handlers
	if capability.sessionErr != nil {
		return nil, capability.sessionErr
	}
	return capability.session, nil
}

func (capability *scriptedCapability) say(transcripts ...string) {
	results := make([]Result, 0, len(transcripts))
	for _, transcript := range transcripts {
		results = append(results, Result{Transcript: transcript, Final: true})
	}
	capability.handlers.OnResult(results)
}

type countingController struct {
	starts, pauses, resets, laps int
}

func (controller *countingController) Start()     { controller.starts++ }
func (controller *countingController) Pause()     { controller.pauses++ }
func (controller *countingController) Reset()     { controller.resets++ }
func (controller *countingController) RecordLap() { controller.laps++ }

type recordingStatus struct {
	texts []string
}

func (status *recordingStatus) SetText(text string) {
	status.texts = append(status.texts, text)
}

func (status *recordingStatus) last() string {
	if len(status.texts) == 0 {
		return ""
	}
	return status.texts[len(status.texts)-1]
}

type recordingButton struct {
	label  string
	active bool
}

func (button *recordingButton) SetLabel(label string) { button.label = label }
func (button *recordingButton) SetActive(active bool) { button.active = active }

type routerHarness struct {
	session    *mockSession
	capability *scriptedCapability
	controller *countingController
	status     *recordingStatus
	button     *recordingButton
	router     *Router
}

func newRouterHarness(supported bool) *routerHarness {
	h := &routerHarness{
		session:    &mockSession{},
		controller: &countingController{},
		status:     &recordingStatus{},
		button:     &recordingButton{},
	}
	h.capability = &scriptedCapability{supported: supported, session: h.session}
	h.router = New(model.VoiceConfig{Locale: "en-US", Continuous: true}, h.capability, h.controller, h.status, h.button, nil)
	return h
}

func (h *routerHarness) activate(t *testing.T) {
	t.Helper()
	h.session.On("Start").Return(nil).Once()
	h.router.Initialize()
	h.router.Toggle()
	require.Equal(t, StateActive, h.router.State())
}

func TestInitializeUnsupported(t *testing.T) {
	h := newRouterHarness(false)
	h.router.Initialize()

	assert.Equal(t, StateUnsupported, h.router.State())
	assert.Equal(t, StatusUnsupported, h.status.last())
	assert.Zero(t, h.capability.created)
}

func TestToggleUnsupportedNeverStartsSession(t *testing.T) {
	h := newRouterHarness(false)
	h.router.Initialize()

	h.router.Toggle()
	h.router.Toggle()

	assert.Equal(t, StateUnsupported, h.router.State())
	h.session.AssertNotCalled(t, "Start")
	h.session.AssertNotCalled(t, "Stop")
}

func TestToggleBeforeInitializeIsNoOp(t *testing.T) {
	h := newRouterHarness(true)
	h.router.Toggle()

	assert.Equal(t, StateUninitialized, h.router.State())
	h.session.AssertNotCalled(t, "Start")
}

func TestInitializeSessionError(t *testing.T) {
	h := newRouterHarness(true)
	h.capability.sessionErr = errors.New("no microphone")
	h.router.Initialize()

	assert.Equal(t, StateUnsupported, h.router.State())
	assert.Equal(t, StatusUnsupported, h.status.last())
}

func TestInitializeConfiguresSession(t *testing.T) {
	h := newRouterHarness(true)
	h.router.Initialize()

	assert.Equal(t, StateInactive, h.router.State())
	assert.Equal(t, 1, h.capability.created)
	assert.Equal(t, model.VoiceConfig{Locale: "en-US", Continuous: true}, h.capability.config)
	assert.Equal(t, LabelTurnOn, h.button.label)
	assert.False(t, h.button.active)

	h.router.Initialize()
	assert.Equal(t, 1, h.capability.created)
}

func TestToggleOnAndOff(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	assert.Equal(t, StatusActive, h.status.last())
	assert.Equal(t, LabelTurnOff, h.button.label)
	assert.True(t, h.button.active)

	h.session.On("Stop").Return(nil).Once()
	h.router.Toggle()

	assert.Equal(t, StateInactive, h.router.State())
	assert.Equal(t, StatusOff, h.status.last())
	assert.Equal(t, LabelTurnOn, h.button.label)
	assert.False(t, h.button.active)
	h.session.AssertExpectations(t)
}

func TestToggleStartFailureStaysInactive(t *testing.T) {
	h := newRouterHarness(true)
	h.session.On("Start").Return(errors.New("busy")).Once()
	h.router.Initialize()
	h.router.Toggle()

	assert.Equal(t, StateInactive, h.router.State())
	assert.Equal(t, "Voice recognition error: busy", h.status.last())
	assert.Equal(t, LabelTurnOn, h.button.label)
}

func TestResultDispatchesNormalizedCommand(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.capability.say("Start ")

	assert.Equal(t, 1, h.controller.starts)
	assert.Equal(t, `Command "start"`, h.status.last())
}

func TestResultDispatchTable(t *testing.T) {
	tests := []struct {
		transcript string
		check      func(t *testing.T, controller *countingController)
		status     string
	}{
		{transcript: "PAUSE", check: func(t *testing.T, c *countingController) { assert.Equal(t, 1, c.pauses) }, status: `Command "pause"`},
		{transcript: "  reset", check: func(t *testing.T, c *countingController) { assert.Equal(t, 1, c.resets) }, status: `Command "reset"`},
		{transcript: "Lap", check: func(t *testing.T, c *countingController) { assert.Equal(t, 1, c.laps) }, status: `Command "lap"`},
		{transcript: "Start the clock", check: func(t *testing.T, c *countingController) {
			assert.Equal(t, countingController{}, *c)
		}, status: `Command "start the clock" not recognized.`},
	}

	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			h := newRouterHarness(true)
			h.activate(t)

			h.capability.say(tt.transcript)

			tt.check(t, h.controller)
			assert.Equal(t, tt.status, h.status.last())
		})
	}
}

func TestResultUsesLastEntry(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.capability.say("start", "lap")

	assert.Zero(t, h.controller.starts)
	assert.Equal(t, 1, h.controller.laps)
}

func TestResultAfterToggleOffIsDropped(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.session.On("Stop").Return(nil).Once()
	h.router.Toggle()
	h.capability.say("start")
	h.capability.say("lap")

	assert.Equal(t, countingController{}, *h.controller)
	assert.Equal(t, StatusOff, h.status.last())
}

func TestInterimResultsIgnoredWhenDisabled(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.capability.handlers.OnResult([]Result{{Transcript: "start", Final: false}})
	h.capability.handlers.OnResult(nil)

	assert.Zero(t, h.controller.starts)
	assert.Equal(t, StatusActive, h.status.last())
}

func TestErrorReportsCodeWithoutStateChange(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.capability.handlers.OnError("no-speech")

	assert.Equal(t, "Voice recognition error: no-speech", h.status.last())
	assert.Equal(t, StateActive, h.router.State())
	h.session.AssertNumberOfCalls(t, "Start", 1)
	h.session.AssertNotCalled(t, "Stop")
}

func TestEndWhileActiveRestartsOnce(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.session.On("Start").Return(nil).Once()
	h.capability.handlers.OnEnd()

	h.session.AssertNumberOfCalls(t, "Start", 2)
	assert.Equal(t, StateActive, h.router.State())
	assert.Equal(t, 1, h.router.Restarts())
	assert.Equal(t, StatusActive, h.status.last())
}

func TestEndWhileInactiveDoesNotRestart(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.session.On("Stop").Return(nil).Once()
	h.router.Toggle()
	h.capability.handlers.OnEnd()

	h.session.AssertNumberOfCalls(t, "Start", 1)
	assert.Zero(t, h.router.Restarts())
	assert.Equal(t, StatusOff, h.status.last())
}

func TestEndRestartFailureDeactivates(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.session.On("Start").Return(errors.New("audio-capture")).Once()
	h.capability.handlers.OnEnd()

	assert.Equal(t, StateInactive, h.router.State())
	assert.Equal(t, "Voice recognition error: audio-capture", h.status.last())
	assert.Equal(t, LabelTurnOn, h.button.label)
	assert.False(t, h.button.active)
}

func TestEndFromStoppedRunKeepsNewerRun(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.session.On("Start").Return(ErrSessionRunning).Once()
	h.capability.handlers.OnEnd()

	assert.Equal(t, StateActive, h.router.State())
	assert.Zero(t, h.router.Restarts())
	assert.Equal(t, StatusActive, h.status.last())
	assert.True(t, h.button.active)
}

func TestRestartFailureUpdatesEveryAffordance(t *testing.T) {
	h := newRouterHarness(true)
	mirror := &recordingButton{}
	h.router = New(model.VoiceConfig{Continuous: true}, h.capability, h.controller, h.status, Affordances(h.button, nil, mirror), nil)
	h.activate(t)
	assert.True(t, mirror.active)
	assert.Equal(t, LabelTurnOff, mirror.label)

	h.session.On("Start").Return(errors.New("audio-capture")).Once()
	h.capability.handlers.OnEnd()

	assert.False(t, h.button.active)
	assert.False(t, mirror.active)
	assert.Equal(t, LabelTurnOn, mirror.label)
}

func TestCloseStopsActiveSession(t *testing.T) {
	h := newRouterHarness(true)
	h.activate(t)

	h.session.On("Stop").Return(nil).Once()
	h.router.Close()
	h.router.Close()

	assert.False(t, h.router.Active())
	h.session.AssertNumberOfCalls(t, "Stop", 1)
}

func TestMatch(t *testing.T) {
	command, ok := Match(" LAP\n")
	assert.True(t, ok)
	assert.Equal(t, CommandLap, command)

	_, ok = Match("laps")
	assert.False(t, ok)
	_, ok = Match("")
	assert.False(t, ok)
}
