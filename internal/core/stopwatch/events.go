package stopwatch

import "time"

// State represents the current Tracker mode.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of Tracker event.
type EventType string

const (
	EventStarted EventType = "started"
	EventPaused  EventType = "paused"
	EventReset   EventType = "reset"
	EventLap     EventType = "lap"
)

// Event represents a Tracker update for observers.
type Event struct {
	Type    EventType
	State   State
	Elapsed time.Duration
	Display string
	Lap     *Lap
	At      time.Time
}
