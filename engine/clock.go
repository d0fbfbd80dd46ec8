package engine

import (
	"math"
	"time"
)

// SimClock is the simulation time base: the sum of sanitized tick deltas
// Wall time never enters the simulation, so runs are reproducible
type SimClock struct {
	elapsed time.Duration
}

// Advance adds dt seconds, capped at maxDt when positive, and returns the new time
// Non-finite and negative deltas add nothing
func (c *SimClock) Advance(dt, maxDt float64) time.Duration {
	if math.IsNaN(dt) || dt <= 0 || (math.IsInf(dt, 1) && maxDt <= 0) {
		return c.elapsed
	}
	if maxDt > 0 && dt > maxDt {
		dt = maxDt
	}
	c.elapsed += time.Duration(math.Round(dt * float64(time.Second)))
	return c.elapsed
}

// Now returns the accumulated simulation time
func (c *SimClock) Now() time.Duration {
	return c.elapsed
}

// TimeProvider supplies wall time to the frame driver
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock
type MonotonicTimeProvider struct{}

// Now returns the current time with monotonic clock reading
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
