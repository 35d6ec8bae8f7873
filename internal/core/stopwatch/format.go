package stopwatch

import (
	"fmt"
	"time"
)

// ZeroDisplay is the display value of a reset stopwatch.
const ZeroDisplay = "00:00:00"

// Format renders elapsed time as MM:SS:CC. Minutes wrap at 60 and
// CC is the hundredths-of-a-second bucket.
func Format(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	millis := elapsed.Milliseconds()
	minutes := (millis / (1000 * 60)) % 60
	seconds := (millis / 1000) % 60
	hundredths := (millis % 1000) / 10
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, hundredths)
}

// Lap is a snapshot of the display taken by RecordLap.
type Lap struct {
	Number  int
	Display string
}

// Label returns the lap line shown in lap lists.
func (lap Lap) Label() string {
	return fmt.Sprintf("Lap %d: %s", lap.Number, lap.Display)
}
