package track

import (
	"math"

	"github.com/lixenwraith/vi-racer/vmath"
)

// closedTolerance decides whether the last point meets the first
const closedTolerance = 1e-6

// Classification is the result of testing a position against the centerline
type Classification struct {
	OnTrack bool
	// NearestDistance is the distance to the closest claiming segment; off the track
	// it is also bounded by the distance to the nearest centerline vertex
	NearestDistance float64
	// Segment is the index of the nearest claiming segment, -1 if none
	Segment int
}

// Classify reports whether pos lies within trackWidth/2 of any centerline segment
// Projections past an interior joint clamp onto the shared vertex, so corners are
// covered from both sides; past the open ends of an unclosed track a segment does
// not claim the position
func Classify(pos vmath.Vec2, c *Centerline, trackWidth float64) Classification {
	half := trackWidth / 2
	result := Classification{
		NearestDistance: math.Inf(1),
		Segment:         -1,
	}

	first, last := c.segmentRange()
	closed := c.Closed(closedTolerance)

	for i := first; i <= last; i++ {
		start, end := c.points[i], c.points[i+1]
		seg := vmath.V2Sub(end, start)
		length := vmath.V2Mag(seg)
		if length == 0 {
			continue
		}

		dir := vmath.V2Scale(seg, 1/length)
		proj := vmath.V2Dot(vmath.V2Sub(pos, start), dir)
		if proj < 0 {
			if i == first && !closed {
				continue
			}
			proj = 0
		}
		if proj > length {
			if i == last && !closed {
				continue
			}
			proj = length
		}

		foot := vmath.V2AddScaled(start, dir, proj)
		dist := vmath.V2Dist(pos, foot)
		if dist <= half {
			result.OnTrack = true
		}
		if dist < result.NearestDistance {
			result.NearestDistance = dist
			result.Segment = i
		}
	}

	if !result.OnTrack {
		for _, p := range c.points {
			if d := vmath.V2Dist(pos, p); d < result.NearestDistance {
				result.NearestDistance = d
			}
		}
	}

	return result
}

// segmentRange returns the indices of the first and last non-degenerate segments
// last < first when there are none
func (c *Centerline) segmentRange() (first, last int) {
	first, last = 0, -1
	n := len(c.points) - 1
	for first < n && c.points[first] == c.points[first+1] {
		first++
	}
	last = n - 1
	for last >= first && c.points[last] == c.points[last+1] {
		last--
	}
	return first, last
}

// DistanceToStart is the straight-line distance from pos to the start/finish point
func DistanceToStart(pos vmath.Vec2, c *Centerline) float64 {
	return vmath.V2Dist(pos, c.Start())
}
