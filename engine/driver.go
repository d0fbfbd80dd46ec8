package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/race"
	"github.com/lixenwraith/vi-racer/status"
)

// Frame is the result of one driver step
type Frame struct {
	Snapshot
	Controls physics.Controls
	// Restarted is set when a restart command was applied before the tick
	Restarted  bool
	ToggleMute bool
	Quit       bool
}

// Driver runs one session tick per frame: drain commands, sample controls, tick
// It is owned by the frame loop goroutine; only the input cell is shared
type Driver struct {
	session *Session
	cell    *input.Cell
	pilot   *Autopilot
	clock   TimeProvider
	stats   *status.Registry
	log     zerolog.Logger

	last        time.Time
	nominalStep float64
	frames      uint64
}

// DriverOption configures a Driver
type DriverOption func(*Driver)

// WithAutopilot replaces player controls with a pursuit driver
func WithAutopilot(p *Autopilot) DriverOption {
	return func(d *Driver) { d.pilot = p }
}

// WithClock sets the wall-time source, MonotonicTimeProvider by default
func WithClock(c TimeProvider) DriverOption {
	return func(d *Driver) { d.clock = c }
}

// WithStats publishes per-frame figures into a status registry
func WithStats(r *status.Registry) DriverOption {
	return func(d *Driver) { d.stats = r }
}

// WithLogger sets the driver logger
func WithLogger(l zerolog.Logger) DriverOption {
	return func(d *Driver) { d.log = l.With().Str("component", "driver").Logger() }
}

// NewDriver creates a driver; tickInterval is the dt used for the first frame
func NewDriver(s *Session, cell *input.Cell, tickInterval time.Duration, opts ...DriverOption) *Driver {
	d := &Driver{
		session:     s,
		cell:        cell,
		clock:       MonotonicTimeProvider{},
		log:         zerolog.Nop(),
		nominalStep: tickInterval.Seconds(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Session returns the driven session
func (d *Driver) Session() *Session {
	return d.session
}

// Demo reports whether the autopilot is driving
func (d *Driver) Demo() bool {
	return d.pilot != nil
}

// Frame executes one frame at the current wall time
func (d *Driver) Frame() Frame {
	now := d.clock.Now()
	dt := d.nominalStep
	if !d.last.IsZero() {
		dt = now.Sub(d.last).Seconds()
	}
	d.last = now
	d.frames++

	var f Frame
	for _, cmd := range d.cell.TakeCommands() {
		switch cmd {
		case input.IntentRestart:
			d.restart()
			f.Restarted = true
		case input.IntentToggleMute:
			f.ToggleMute = !f.ToggleMute
		case input.IntentQuit:
			f.Quit = true
		}
	}

	if d.pilot != nil {
		cur := d.session.Snapshot()
		// Demo loops forever
		if cur.Race.Phase == race.PhaseGameOver {
			d.restart()
			f.Restarted = true
			cur = d.session.Snapshot()
		}
		f.Controls = d.pilot.Controls(cur.Vehicle)
	} else {
		f.Controls = d.cell.Snapshot(now)
	}

	f.Snapshot = d.session.Tick(f.Controls, dt)
	d.publish(f, dt)
	return f
}

// Restart applies a restart outside the command queue
func (d *Driver) Restart() Snapshot {
	return d.restart()
}

func (d *Driver) restart() Snapshot {
	if d.pilot != nil {
		d.pilot.Reset()
	}
	d.cell.ReleaseAll()
	d.log.Debug().Bool("demo", d.pilot != nil).Msg("restart")
	return d.session.Restart()
}

func (d *Driver) publish(f Frame, dt float64) {
	if d.stats == nil {
		return
	}
	d.stats.Ints.Get(status.KeyFrames).Store(int64(d.frames))
	d.stats.Ints.Get(status.KeyTicks).Store(int64(f.Tick))
	d.stats.Floats.Get(status.KeyFrameDt).Set(dt * 1000)
	if dt > 0 {
		d.stats.Floats.Get(status.KeyFPS).Set(1 / dt)
	}
	d.stats.Floats.Get(status.KeyNearest).Set(f.Class.NearestDistance)
	d.stats.Ints.Get(status.KeySegment).Store(int64(f.Class.Segment))
	d.stats.Strings.Get(status.KeyPhase).Store(f.Race.Phase.String())
}
