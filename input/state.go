package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-racer/physics"
)

// DefaultHoldWindow covers the gap between the first press and the terminal's key-repeat
const DefaultHoldWindow = 180 * time.Millisecond

// maxQueuedCommands bounds the command queue between ticks
const maxQueuedCommands = 16

// Cell is the hold-latched intent store shared by the event reader and the frame loop
// Terminals report presses and repeats but never releases, so a held intent stays
// active until its last press is older than the hold window
type Cell struct {
	mu       sync.Mutex
	hold     time.Duration
	pressed  [intentCount]time.Time
	commands []Intent
}

// NewCell creates a cell; non-positive hold falls back to DefaultHoldWindow
func NewCell(hold time.Duration) *Cell {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &Cell{
		hold:     hold,
		commands: make([]Intent, 0, maxQueuedCommands),
	}
}

// HoldWindow returns the latch duration
func (c *Cell) HoldWindow() time.Duration {
	return c.hold
}

// Press latches a held intent or queues a command
func (c *Cell) Press(intent Intent, at time.Time) {
	if intent == IntentNone || intent >= intentCount {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !intent.Held() {
		if len(c.commands) < maxQueuedCommands {
			c.commands = append(c.commands, intent)
		}
		return
	}

	c.pressed[intent] = at
	// Opposite directions cancel the stale latch so a quick reversal responds immediately
	if opp := opposite(intent); opp != IntentNone {
		c.pressed[opp] = time.Time{}
	}
}

// Release drops a held latch immediately
func (c *Cell) Release(intent Intent) {
	if !intent.Held() {
		return
	}
	c.mu.Lock()
	c.pressed[intent] = time.Time{}
	c.mu.Unlock()
}

// ReleaseAll drops every held latch, leaving queued commands
func (c *Cell) ReleaseAll() {
	c.mu.Lock()
	c.pressed = [intentCount]time.Time{}
	c.mu.Unlock()
}

// Clear drops all latches and queued commands
func (c *Cell) Clear() {
	c.mu.Lock()
	c.pressed = [intentCount]time.Time{}
	c.commands = c.commands[:0]
	c.mu.Unlock()
}

// Snapshot returns the controls active at now
func (c *Cell) Snapshot(now time.Time) physics.Controls {
	c.mu.Lock()
	defer c.mu.Unlock()

	return physics.Controls{
		Accelerate: c.active(IntentAccelerate, now),
		Brake:      c.active(IntentBrake, now),
		TurnLeft:   c.active(IntentTurnLeft, now),
		TurnRight:  c.active(IntentTurnRight, now),
	}
}

// TakeCommands drains the queued commands in press order
func (c *Cell) TakeCommands() []Intent {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.commands) == 0 {
		return nil
	}
	out := make([]Intent, len(c.commands))
	copy(out, c.commands)
	c.commands = c.commands[:0]
	return out
}

// active must be called with mu held
func (c *Cell) active(intent Intent, now time.Time) bool {
	at := c.pressed[intent]
	if at.IsZero() {
		return false
	}
	return now.Sub(at) < c.hold
}

func opposite(intent Intent) Intent {
	switch intent {
	case IntentAccelerate:
		return IntentBrake
	case IntentBrake:
		return IntentAccelerate
	case IntentTurnLeft:
		return IntentTurnRight
	case IntentTurnRight:
		return IntentTurnLeft
	}
	return IntentNone
}
