package status

import (
	"fmt"
	"sync/atomic"
)

// Keys published by the frame driver and the audio manager
const (
	KeyFrames  = "driver.frames"
	KeyTicks   = "session.ticks"
	KeyFrameDt = "driver.frame_ms"
	KeyFPS     = "driver.fps"
	KeyNearest = "track.nearest"
	KeySegment = "track.segment"
	KeyPhase   = "race.phase"
	KeyMuted   = "audio.muted"
)

// Registry holds live figures for the debug overlay
// Writers cache the pointer returned by Get and store lock-free
type Registry struct {
	Bools   *Figures[atomic.Bool]
	Ints    *Figures[atomic.Int64]
	Floats  *Figures[AtomicFloat]
	Strings *Figures[AtomicString]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewFigures[atomic.Bool](),
		Ints:    NewFigures[atomic.Int64](),
		Floats:  NewFigures[AtomicFloat](),
		Strings: NewFigures[AtomicString](),
	}
}

// Count returns the number of registered figures
func (r *Registry) Count() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Lines renders every figure as "key value", grouped by kind and sorted by key
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.Count())
	for k, v := range r.Strings.All() {
		out = append(out, fmt.Sprintf("%s %s", k, v.Load()))
	}
	for k, v := range r.Bools.All() {
		out = append(out, fmt.Sprintf("%s %t", k, v.Load()))
	}
	for k, v := range r.Ints.All() {
		out = append(out, fmt.Sprintf("%s %d", k, v.Load()))
	}
	for k, v := range r.Floats.All() {
		out = append(out, fmt.Sprintf("%s %.2f", k, v.Get()))
	}
	return out
}
