package engine

import (
	"math"

	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

const (
	// DefaultLookahead is the pursuit distance along the centerline in metres
	DefaultLookahead = 6.0
	// DefaultSteerDeadband is the heading error tolerated without steering
	DefaultSteerDeadband = 0.02

	// closedTolerance decides whether the centerline wraps for the search window
	closedTolerance = 1e-6
	// search window around the last tracked segment
	searchBehind = 1
	searchAhead  = 4
)

// Autopilot steers a vehicle along a centerline by pure pursuit
// It produces the same discrete controls a player would, so the session cannot
// tell the two apart
type Autopilot struct {
	points []vmath.Vec2
	closed bool

	Lookahead   float64
	Deadband    float64
	TargetSpeed float64

	segment int
}

// NewAutopilot creates a pursuit driver; targetSpeed <= 0 means flat out
func NewAutopilot(c *track.Centerline, targetSpeed float64) *Autopilot {
	if targetSpeed <= 0 {
		targetSpeed = math.Inf(1)
	}
	return &Autopilot{
		points:      c.Points(),
		closed:      c.Len() > 2 && c.Closed(closedTolerance),
		Lookahead:   DefaultLookahead,
		Deadband:    DefaultSteerDeadband,
		TargetSpeed: targetSpeed,
		segment:     -1,
	}
}

// Reset forgets the tracked segment, used after a respawn
func (a *Autopilot) Reset() {
	a.segment = -1
}

// Segment returns the centerline segment the vehicle was last projected onto, -1 before the first call
func (a *Autopilot) Segment() int {
	return a.segment
}

// Target returns the pursuit point for a vehicle position and advances the tracked segment
func (a *Autopilot) Target(pos vmath.Vec2) vmath.Vec2 {
	if len(a.points) < 2 {
		if len(a.points) == 1 {
			return a.points[0]
		}
		return pos
	}

	seg, along := a.project(pos)
	a.segment = seg
	return a.walk(seg, along, a.Lookahead)
}

// Controls returns steering and throttle for the current vehicle state
func (a *Autopilot) Controls(s physics.State) physics.Controls {
	target := a.Target(s.Position)

	var ctrl physics.Controls
	to := vmath.V2Sub(target, s.Position)
	if vmath.V2MagSq(to) > 0 {
		err := vmath.AngDiff(s.Heading, vmath.V2Heading(to))
		ctrl.TurnLeft = err > a.Deadband
		ctrl.TurnRight = err < -a.Deadband
	}
	ctrl.Accelerate = s.Speed < a.TargetSpeed
	return ctrl
}

// project finds the nearest segment within the search window and the clamped distance along it
func (a *Autopilot) project(pos vmath.Vec2) (int, float64) {
	n := len(a.points) - 1
	best, bestSeg, bestAlong := math.Inf(1), 0, 0.0

	try := func(i int) {
		d, along := projectOnto(pos, a.points[i], a.points[i+1])
		if d < best {
			best, bestSeg, bestAlong = d, i, along
		}
	}

	switch {
	case a.segment < 0:
		for i := 0; i < n; i++ {
			try(i)
		}
	case a.closed:
		for k := -searchBehind; k <= searchAhead; k++ {
			try(((a.segment+k)%n + n) % n)
		}
	default:
		lo := max(0, a.segment-searchBehind)
		hi := min(n-1, a.segment+searchAhead)
		for i := lo; i <= hi; i++ {
			try(i)
		}
	}
	return bestSeg, bestAlong
}

// walk moves dist metres forward along the polyline from segment seg, wrapping on
// closed tracks and extrapolating past the end of open ones
func (a *Autopilot) walk(seg int, along, dist float64) vmath.Vec2 {
	n := len(a.points) - 1
	for guard := 0; guard <= n; guard++ {
		start, end := a.points[seg], a.points[seg+1]
		d := vmath.V2Sub(end, start)
		length := vmath.V2Mag(d)
		if length > 0 {
			dir := vmath.V2Scale(d, 1/length)
			if along+dist <= length || (!a.closed && seg == n-1) {
				return vmath.V2AddScaled(start, dir, along+dist)
			}
			dist -= length - along
		}
		along = 0
		seg++
		if seg == n {
			if !a.closed {
				return a.points[n]
			}
			seg = 0
		}
	}
	return a.points[seg]
}

func projectOnto(pos, start, end vmath.Vec2) (dist, along float64) {
	d := vmath.V2Sub(end, start)
	length := vmath.V2Mag(d)
	if length == 0 {
		return math.Inf(1), 0
	}
	dir := vmath.V2Scale(d, 1/length)
	along = vmath.ClampF(vmath.V2Dot(vmath.V2Sub(pos, start), dir), 0, length)
	return vmath.V2Dist(pos, vmath.V2AddScaled(start, dir, along)), along
}
