package tray

import (
	"fmt"

	"stopwatch/internal/core/stopwatch"
	"stopwatch/internal/core/voice"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStartPause  func()
	OnReset       func()
	OnLap         func()
	OnToggleVoice func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	runItem    *fyne.MenuItem
	lapItem    *fyne.MenuItem
	voiceItem  *fyne.MenuItem
	state      stopwatch.State
	laps       int
	voiceOn    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		state:     stopwatch.StateStopped,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.runItem = fyne.NewMenuItem("", func() { fire(manager.callbacks.OnStartPause) })
	manager.lapItem = fyne.NewMenuItem("Lap", func() { fire(manager.callbacks.OnLap) })
	manager.voiceItem = fyne.NewMenuItem("", func() { fire(manager.callbacks.OnToggleVoice) })

	manager.refresh()
	return manager
}

// Observe updates the menu from a tracker event.
func (manager *Manager) Observe(event stopwatch.Event) {
	manager.state = event.State
	switch event.Type {
	case stopwatch.EventReset:
		manager.laps = 0
	case stopwatch.EventLap:
		if event.Lap != nil {
			manager.laps = event.Lap.Number
		}
	}
	manager.refresh()
}

// SetVoiceActive updates the voice menu entry.
func (manager *Manager) SetVoiceActive(active bool) {
	manager.voiceOn = active
	manager.refresh()
}

// VoiceAffordance mirrors the router's voice state into the tray menu.
func (manager *Manager) VoiceAffordance() voice.Affordance {
	return voiceAffordance{manager: manager}
}

// Running reports whether the last observed state was running.
func (manager *Manager) Running() bool {
	return manager.state == stopwatch.StateRunning
}

func (manager *Manager) refresh() {
	manager.statusItem.Label = manager.statusLabel()
	if manager.Running() {
		manager.runItem.Label = "Pause"
	} else {
		manager.runItem.Label = "Start"
	}
	manager.lapItem.Disabled = !manager.Running()
	if manager.voiceOn {
		manager.voiceItem.Label = "Stop voice control"
	} else {
		manager.voiceItem.Label = "Start voice control"
	}

	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Stopwatch",
		manager.statusItem,
		fyne.NewMenuItem("Show stopwatch", func() { fire(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.runItem,
		manager.lapItem,
		fyne.NewMenuItem("Reset", func() { fire(manager.callbacks.OnReset) }),
		manager.voiceItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { fire(manager.callbacks.OnQuit) }),
	))
}

func (manager *Manager) statusLabel() string {
	status := fmt.Sprintf("Status: %s", manager.state)
	if manager.laps > 0 {
		status = fmt.Sprintf("%s, %d laps", status, manager.laps)
	}
	return status
}

type voiceAffordance struct {
	manager *Manager
}

func (voiceAffordance) SetLabel(string) {}

func (item voiceAffordance) SetActive(active bool) {
	fyne.Do(func() {
		item.manager.SetVoiceActive(active)
	})
}

func fire(handler func()) {
	if handler != nil {
		handler()
	}
}
