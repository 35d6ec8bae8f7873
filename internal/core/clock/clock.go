package clock

import (
	"sync"
	"time"
)

// Clock provides the current wall-clock instant.
type Clock interface {
	Now() time.Time
}

// Handle cancels a repeating schedule. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler runs a callback repeatedly at a fixed interval until cancelled.
type Scheduler interface {
	Every(interval time.Duration, callback func()) Handle
}

// System is the Clock and Scheduler backed by the standard library.
var System = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Every(interval time.Duration, callback func()) Handle {
	handle := &tickerHandle{stopCh: make(chan struct{})}
	go handle.run(interval, callback)
	return handle
}

type tickerHandle struct {
	stopCh chan struct{}
	once   sync.Once
}

func (handle *tickerHandle) Cancel() {
	handle.once.Do(func() {
		close(handle.stopCh)
	})
}

func (handle *tickerHandle) run(interval time.Duration, callback func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-handle.stopCh:
			return
		case <-ticker.C:
			select {
			case <-handle.stopCh:
				return
			default:
			}
			callback()
		}
	}
}
