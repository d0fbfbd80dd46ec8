package engine

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/race"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// DefaultTrackWidth is the drivable width in metres
const DefaultTrackWidth = 10.0

// Options configures a Session
type Options struct {
	Vehicle    physics.Params
	Race       race.Config
	TrackWidth float64

	// Logger receives lifecycle and race events; zero value discards
	Logger zerolog.Logger
	// Meter overrides the global OpenTelemetry meter
	Meter metric.Meter
}

// DefaultOptions returns the canonical tuning with a discarding logger
func DefaultOptions() Options {
	return Options{
		Vehicle:    physics.DefaultParams(),
		Race:       race.DefaultConfig(),
		TrackWidth: DefaultTrackWidth,
		Logger:     zerolog.Nop(),
	}
}

// Snapshot is an immutable view of the simulation after a tick
type Snapshot struct {
	Tick            uint64
	Time            time.Duration
	Vehicle         physics.State
	Race            race.State
	Class           track.Classification
	DistanceToStart float64
	Events          []race.Event
}

// Session owns the simulation state for one centerline
// Tick and Restart are serialized; Snapshot may be called from any goroutine
type Session struct {
	mu sync.RWMutex

	centerline *track.Centerline
	opts       Options
	log        zerolog.Logger
	metrics    *sessionMetrics

	clock   SimClock
	tick    uint64
	vehicle physics.State
	race    race.State
	class   track.Classification
	dist    float64
	events  []race.Event
}

// NewSession validates options and spawns the vehicle at the centerline start
func NewSession(c *track.Centerline, opts Options) (*Session, error) {
	if c == nil || c.Len() == 0 {
		return nil, errors.New("session requires a non-empty centerline")
	}
	if err := opts.Vehicle.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid vehicle params")
	}
	if err := opts.Race.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid race config")
	}
	if !vmath.Finite(opts.TrackWidth) || opts.TrackWidth <= 0 {
		return nil, errors.Errorf("track width must be positive, got %v", opts.TrackWidth)
	}

	m, err := newSessionMetrics(opts.Meter)
	if err != nil {
		return nil, err
	}

	s := &Session{
		centerline: c,
		opts:       opts,
		log:        opts.Logger.With().Str("component", "session").Logger(),
		metrics:    m,
	}
	s.vehicle = s.spawn()
	s.race = race.New(0, false)
	s.observe()

	s.log.Info().
		Int("points", c.Len()).
		Float64("length", c.Length()).
		Float64("track_width", opts.TrackWidth).
		Msg("session created")
	return s, nil
}

// Centerline returns the shared read-only centerline
func (s *Session) Centerline() *track.Centerline {
	return s.centerline
}

// Options returns the session tuning
func (s *Session) Options() Options {
	return s.opts
}

// Tick advances the simulation by dt seconds: motion, classification, race
// The vehicle is frozen once the race is over
func (s *Session) Tick(controls physics.Controls, dt float64) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Advance(dt, s.opts.Vehicle.MaxDt)
	s.tick++

	if s.race.GameOver() {
		s.vehicle.Controls = controls
	} else {
		s.vehicle = physics.Step(s.vehicle, controls, dt, s.opts.Vehicle)
	}
	s.observe()

	var events []race.Event
	s.race, events = race.Advance(s.race, race.Observation{
		OnTrack:         s.class.OnTrack,
		DistanceToStart: s.dist,
		Now:             now,
	}, s.opts.Race)
	s.events = events

	for _, ev := range events {
		s.report(ev)
	}

	return s.snapshotLocked()
}

// Restart respawns the vehicle and resets the race, keeping the best lap
func (s *Session) Restart() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vehicle = s.spawn()
	s.race = s.race.Restart()
	s.events = nil
	s.observe()

	s.metrics.recordRestart()
	best, hasBest := s.race.Best()
	ev := s.log.Info().Uint64("tick", s.tick)
	if hasBest {
		ev = ev.Dur("best", best)
	}
	ev.Msg("race restarted")

	return s.snapshotLocked()
}

// Snapshot returns the state after the most recent tick
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Session) spawn() physics.State {
	return physics.Spawn(s.centerline.Start(), s.centerline.StartHeading())
}

// observe refreshes the classification for the current vehicle position
func (s *Session) observe() {
	s.class = track.Classify(s.vehicle.Position, s.centerline, s.opts.TrackWidth)
	s.dist = track.DistanceToStart(s.vehicle.Position, s.centerline)
}

func (s *Session) snapshotLocked() Snapshot {
	r := s.race
	if r.Laps != nil {
		r.Laps = append([]time.Duration(nil), r.Laps...)
	}
	var events []race.Event
	if len(s.events) > 0 {
		events = append(events, s.events...)
	}
	return Snapshot{
		Tick:            s.tick,
		Time:            s.clock.Now(),
		Vehicle:         s.vehicle,
		Race:            r,
		Class:           s.class,
		DistanceToStart: s.dist,
		Events:          events,
	}
}

func (s *Session) report(ev race.Event) {
	switch ev.Type {
	case race.EventRaceStarted:
		s.log.Info().Dur("at", ev.At).Msg("race started")
	case race.EventLapCompleted:
		s.metrics.recordLap(ev)
		s.log.Info().
			Int("lap", ev.Lap).
			Str("lap_time", race.FormatLapTime(ev.LapTime)).
			Bool("personal_best", ev.PersonalBest).
			Msg("lap completed")
	case race.EventOffTrack:
		s.metrics.recordOffTrack()
		s.log.Warn().
			Dur("at", ev.At).
			Float64("x", s.vehicle.Position.X).
			Float64("z", s.vehicle.Position.Z).
			Float64("nearest", s.class.NearestDistance).
			Int("laps", s.race.LapCount).
			Msg("vehicle left the track")
	}
}
