// Package race implements lap timing and the racing/game-over state machine
package race

import (
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/vmath"
)

// Phase is the tagged race state
type Phase uint8

const (
	PhaseRacing Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRacing:
		return "racing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config holds the start/finish hysteresis band
type Config struct {
	NearThreshold float64 `mapstructure:"near_threshold"`
	FarThreshold  float64 `mapstructure:"far_threshold"`
}

// DefaultConfig returns the stock 5/20 metre band
func DefaultConfig() Config {
	return Config{NearThreshold: 5, FarThreshold: 20}
}

// Validate requires 0 < near < far
func (c Config) Validate() error {
	if !vmath.Finite(c.NearThreshold) || !vmath.Finite(c.FarThreshold) {
		return errors.New("lap thresholds must be finite")
	}
	if c.NearThreshold <= 0 || c.FarThreshold <= c.NearThreshold {
		return errors.Errorf("lap thresholds need 0 < near (%v) < far (%v)", c.NearThreshold, c.FarThreshold)
	}
	return nil
}

// Observation is the classifier output for one tick
type Observation struct {
	OnTrack         bool
	DistanceToStart float64
	Now             time.Duration
}

// EventType discriminates race events
type EventType uint8

const (
	EventNone EventType = iota
	EventRaceStarted
	EventLapCompleted
	EventOffTrack
)

func (e EventType) String() string {
	switch e {
	case EventRaceStarted:
		return "race_started"
	case EventLapCompleted:
		return "lap_completed"
	case EventOffTrack:
		return "off_track"
	default:
		return "none"
	}
}

// Event is a discrete race occurrence emitted by Advance
type Event struct {
	Type EventType
	At   time.Duration
	// Lap and LapTime are set for EventLapCompleted
	Lap          int
	LapTime      time.Duration
	PersonalBest bool
}

// State is the race snapshot; value type, copy freely
type State struct {
	Phase    Phase
	LapCount int
	// Started is set on the first start/finish crossing of an attempt
	Started bool
	// AtLine is the crossed flag, set entering the near band, cleared beyond the far band
	AtLine     bool
	LapStart   time.Duration
	LapElapsed time.Duration
	LastLap    time.Duration
	BestLap    time.Duration
	HasBest    bool
	Laps       []time.Duration
}

// New returns a fresh racing state carrying an optional best lap
func New(best time.Duration, hasBest bool) State {
	return State{Phase: PhaseRacing, BestLap: best, HasBest: hasBest}
}

// Restart clears the attempt and keeps the best lap
func (s State) Restart() State {
	return New(s.BestLap, s.HasBest)
}

// GameOver reports whether the attempt has ended
func (s State) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Best returns the best lap and whether one is recorded
func (s State) Best() (time.Duration, bool) {
	return s.BestLap, s.HasBest
}

// Advance applies one tick of observations and returns the next state with emitted events
// GameOver is terminal until Restart
func Advance(s State, obs Observation, cfg Config) (State, []Event) {
	if s.Phase == PhaseGameOver {
		return s, nil
	}

	if !obs.OnTrack {
		s.Phase = PhaseGameOver
		s.LapElapsed = obs.Now - s.LapStart
		return s, []Event{{Type: EventOffTrack, At: obs.Now}}
	}

	var events []Event

	switch {
	case obs.DistanceToStart < cfg.NearThreshold:
		if !s.AtLine {
			s.AtLine = true
			s, events = cross(s, obs.Now)
		}
	case obs.DistanceToStart > cfg.FarThreshold:
		s.AtLine = false
	}

	s.LapElapsed = obs.Now - s.LapStart
	return s, events
}

// cross handles a fresh entry into the start/finish band
func cross(s State, now time.Duration) (State, []Event) {
	if !s.Started {
		s.Started = true
		s.LapStart = now
		return s, []Event{{Type: EventRaceStarted, At: now}}
	}

	lap := now - s.LapStart
	best := !s.HasBest || lap < s.BestLap
	if best {
		s.BestLap = lap
		s.HasBest = true
	}
	s.LapCount++
	s.LastLap = lap
	s.LapStart = now

	laps := make([]time.Duration, len(s.Laps), len(s.Laps)+1)
	copy(laps, s.Laps)
	s.Laps = append(laps, lap)

	return s, []Event{{
		Type:         EventLapCompleted,
		At:           now,
		Lap:          s.LapCount,
		LapTime:      lap,
		PersonalBest: best,
	}}
}
