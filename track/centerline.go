package track

import (
	"github.com/peterstace/simplefeatures/geom"

	"github.com/lixenwraith/vi-racer/vmath"
)

// Centerline is the ordered polyline through the middle of the drivable surface
// Immutable after Generate; safe to share between classifier and renderer
type Centerline struct {
	points       []vmath.Vec2
	startHeading float64
	endHeading   float64
}

// Len returns the number of points
func (c *Centerline) Len() int {
	return len(c.points)
}

// Point returns the i-th point
func (c *Centerline) Point(i int) vmath.Vec2 {
	return c.points[i]
}

// Points returns a copy of the polyline
func (c *Centerline) Points() []vmath.Vec2 {
	out := make([]vmath.Vec2, len(c.points))
	copy(out, c.points)
	return out
}

// Start is the designated start/finish point
func (c *Centerline) Start() vmath.Vec2 {
	return c.points[0]
}

// End is the last generated point
func (c *Centerline) End() vmath.Vec2 {
	return c.points[len(c.points)-1]
}

// StartHeading is the heading of travel at the start point
func (c *Centerline) StartHeading() float64 {
	return c.startHeading
}

// EndHeading is the heading of travel leaving the last point
func (c *Centerline) EndHeading() float64 {
	return c.endHeading
}

// Closed reports whether the last point returns to the start within tol
func (c *Centerline) Closed(tol float64) bool {
	return len(c.points) > 1 && vmath.V2Dist(c.Start(), c.End()) <= tol
}

// Bounds returns the axis-aligned extent of the polyline
func (c *Centerline) Bounds() (min, max vmath.Vec2) {
	min, max = c.points[0], c.points[0]
	for _, p := range c.points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// lineString maps the centerline onto the x/y plane of a simple-features geometry
func (c *Centerline) lineString() (geom.LineString, bool) {
	if len(c.points) < 2 {
		return geom.LineString{}, false
	}
	coords := make([]float64, 0, len(c.points)*2)
	for _, p := range c.points {
		coords = append(coords, p.X, p.Z)
	}
	ls, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return geom.LineString{}, false
	}
	return ls, true
}

// Length is the polyline length in metres
func (c *Centerline) Length() float64 {
	ls, ok := c.lineString()
	if !ok {
		return 0
	}
	return ls.Length()
}

// WKT renders the centerline as a LINESTRING for external plotting tools
func (c *Centerline) WKT() string {
	ls, ok := c.lineString()
	if !ok {
		return "LINESTRING EMPTY"
	}
	return ls.AsText()
}
