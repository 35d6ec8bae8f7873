package stopwatch

import (
	"sync"
	"time"

	"stopwatch/internal/core/clock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (fake *fakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

func (fake *fakeClock) Advance(delta time.Duration) {
	fake.mu.Lock()
	fake.now = fake.now.Add(delta)
	fake.mu.Unlock()
}

// manualScheduler records scheduled callbacks and fires them on demand.
type manualScheduler struct {
	mu        sync.Mutex
	schedules []*manualHandle
}

type manualHandle struct {
	interval  time.Duration
	callback  func()
	cancelled bool
}

func (handle *manualHandle) Cancel() {
	handle.cancelled = true
}

func (scheduler *manualScheduler) Every(interval time.Duration, callback func()) clock.Handle {
	handle := &manualHandle{interval: interval, callback: callback}
	scheduler.mu.Lock()
	scheduler.schedules = append(scheduler.schedules, handle)
	scheduler.mu.Unlock()
	return handle
}

// Fire runs every live callback once.
func (scheduler *manualScheduler) Fire() {
	scheduler.mu.Lock()
	schedules := append([]*manualHandle(nil), scheduler.schedules...)
	scheduler.mu.Unlock()
	for _, handle := range schedules {
		if !handle.cancelled {
			handle.callback()
		}
	}
}

func (scheduler *manualScheduler) active() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	count := 0
	for _, handle := range scheduler.schedules {
		if !handle.cancelled {
			count++
		}
	}
	return count
}

type recordingDisplay struct {
	texts []string
}

func (display *recordingDisplay) SetText(text string) {
	display.texts = append(display.texts, text)
}

func (display *recordingDisplay) last() string {
	if len(display.texts) == 0 {
		return ""
	}
	return display.texts[len(display.texts)-1]
}

type recordingLaps struct {
	labels []string
	clears int
}

func (laps *recordingLaps) Append(label string) {
	laps.labels = append(laps.labels, label)
}

func (laps *recordingLaps) Clear() {
	laps.labels = nil
	laps.clears++
}
