package race

import (
	"fmt"
	"time"
)

// FormatLapTime renders a duration as mm:ss.hh
func FormatLapTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	hundredths := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, hundredths)
}

// FormatBest renders the best lap or N/A
func FormatBest(s State) string {
	if !s.HasBest {
		return "N/A"
	}
	return FormatLapTime(s.BestLap)
}
