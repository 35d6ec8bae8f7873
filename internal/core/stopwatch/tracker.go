package stopwatch

import (
	"sync"
	"time"

	"stopwatch/internal/core/clock"
	"stopwatch/internal/core/model"
)

// DefaultTickInterval is the display refresh cadence when none is configured.
const DefaultTickInterval = 10 * time.Millisecond

// DisplaySink receives the formatted elapsed time.
type DisplaySink interface {
	SetText(text string)
}

// LapSink receives lap lines.
type LapSink interface {
	Append(label string)
	Clear()
}

// Config contains runtime options for Tracker.
type Config struct {
	model.TrackerConfig
	Clock     clock.Clock
	Scheduler clock.Scheduler
}

// Tracker measures elapsed time across start/pause cycles and records laps.
//
// Sinks are called while the tracker lock is held and must not call back
// into the Tracker.
type Tracker struct {
	mu          sync.Mutex
	options     Config
	display     DisplaySink
	lapSink     LapSink
	startedAt   time.Time
	accumulated time.Duration
	running     bool
	handle      clock.Handle
	generation  uint64
	displayed   string
	laps        []Lap
	events      []chan Event
}

// New creates a Tracker writing to the provided sinks. Nil sinks discard output.
func New(options Config, display DisplaySink, laps LapSink) *Tracker {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Clock == nil {
		options.Clock = clock.System
	}
	if options.Scheduler == nil {
		options.Scheduler = clock.System
	}
	if display == nil {
		display = discardSink{}
	}
	if laps == nil {
		laps = discardSink{}
	}

	return &Tracker{
		options:   options,
		display:   display,
		lapSink:   laps,
		displayed: ZeroDisplay,
	}
}

// Subscribe registers a new observer channel.
func (tracker *Tracker) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	tracker.mu.Lock()
	tracker.events = append(tracker.events, ch)
	tracker.mu.Unlock()
	return ch
}

// Start begins measuring, resuming from any accumulated time.
func (tracker *Tracker) Start() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.running {
		return
	}

	now := tracker.options.Clock.Now()
	tracker.startedAt = now.Add(-tracker.accumulated)
	tracker.generation++
	generation := tracker.generation
	tracker.handle = tracker.options.Scheduler.Every(tracker.options.TickInterval, func() {
		tracker.tick(generation)
	})
	tracker.running = true

	tracker.emitLocked(Event{
		Type:    EventStarted,
		State:   StateRunning,
		Elapsed: tracker.accumulated,
		Display: tracker.displayed,
		At:      now,
	})
}

// Pause freezes the elapsed time.
func (tracker *Tracker) Pause() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if !tracker.running {
		return
	}

	now := tracker.options.Clock.Now()
	tracker.cancelTickLocked()
	tracker.accumulated = now.Sub(tracker.startedAt)
	tracker.running = false

	tracker.emitLocked(Event{
		Type:    EventPaused,
		State:   StatePaused,
		Elapsed: tracker.accumulated,
		Display: tracker.displayed,
		At:      now,
	})
}

// Reset stops ticking, zeroes the display and clears all laps.
func (tracker *Tracker) Reset() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.cancelTickLocked()
	tracker.showLocked(ZeroDisplay)
	tracker.running = false
	tracker.accumulated = 0
	tracker.laps = nil
	tracker.lapSink.Clear()

	tracker.emitLocked(Event{
		Type:    EventReset,
		State:   StateStopped,
		Display: ZeroDisplay,
		At:      tracker.options.Clock.Now(),
	})
}

// RecordLap appends the currently displayed value as a new lap.
// It does nothing while the tracker is not running.
func (tracker *Tracker) RecordLap() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if !tracker.running {
		return
	}

	lap := Lap{Number: len(tracker.laps) + 1, Display: tracker.displayed}
	tracker.laps = append(tracker.laps, lap)
	tracker.lapSink.Append(lap.Label())

	tracker.emitLocked(Event{
		Type:    EventLap,
		State:   StateRunning,
		Display: lap.Display,
		Lap:     &lap,
		At:      tracker.options.Clock.Now(),
	})
}

// Elapsed returns the elapsed time net of paused intervals.
func (tracker *Tracker) Elapsed() time.Duration {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.running {
		return tracker.options.Clock.Now().Sub(tracker.startedAt)
	}
	return tracker.accumulated
}

// Running reports whether the tracker is measuring.
func (tracker *Tracker) Running() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.running
}

// Display returns the last value written to the display sink.
func (tracker *Tracker) Display() string {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.displayed
}

// Laps returns a copy of the recorded laps in capture order.
func (tracker *Tracker) Laps() []Lap {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return append([]Lap(nil), tracker.laps...)
}

// Close cancels ticking and closes observer channels.
func (tracker *Tracker) Close() {
	tracker.mu.Lock()
	tracker.cancelTickLocked()
	tracker.running = false
	events := tracker.events
	tracker.events = nil
	tracker.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (tracker *Tracker) tick(generation uint64) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	// A tick queued before Pause/Reset carries an old generation.
	if !tracker.running || generation != tracker.generation {
		return
	}
	elapsed := tracker.options.Clock.Now().Sub(tracker.startedAt)
	tracker.showLocked(Format(elapsed))
}

func (tracker *Tracker) showLocked(text string) {
	tracker.displayed = text
	tracker.display.SetText(text)
}

func (tracker *Tracker) cancelTickLocked() {
	tracker.generation++
	if tracker.handle != nil {
		tracker.handle.Cancel()
		tracker.handle = nil
	}
}

func (tracker *Tracker) emitLocked(event Event) {
	for _, ch := range tracker.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type discardSink struct{}

func (discardSink) SetText(string) {}
func (discardSink) Append(string)  {}
func (discardSink) Clear()         {}
