package track

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/vmath"
)

const (
	// DefaultArcSteps is the number of chords approximating one curve segment
	DefaultArcSteps = 10
	// MinArcSteps is the coarsest accepted curve subdivision
	MinArcSteps = 8
)

type genOptions struct {
	origin   vmath.Vec2
	heading  float64
	arcSteps int
}

// Option tunes Generate
type Option func(*genOptions)

// WithOrigin sets the start/finish point
func WithOrigin(p vmath.Vec2) Option {
	return func(o *genOptions) { o.origin = p }
}

// WithHeading sets the initial forward heading
func WithHeading(h float64) Option {
	return func(o *genOptions) { o.heading = h }
}

// WithArcSteps sets curve subdivision, must be >= MinArcSteps
func WithArcSteps(n int) Option {
	return func(o *genOptions) { o.arcSteps = n }
}

// cursor is the generator accumulator threaded through the segment fold
type cursor struct {
	point vmath.Vec2
	dir   vmath.Vec2
}

// advance applies one segment, returning the next cursor and the points it emits
func (c cursor) advance(seg Segment, steps int) (cursor, []vmath.Vec2) {
	switch seg.Kind {
	case SegmentStraight:
		if seg.Length == 0 {
			return c, nil
		}
		end := vmath.V2AddScaled(c.point, c.dir, seg.Length)
		return cursor{point: end, dir: c.dir}, []vmath.Vec2{end}

	case SegmentCurve:
		if seg.Angle == 0 {
			return c, nil
		}
		if seg.Radius == 0 {
			// Pivot in place
			return cursor{point: c.point, dir: vmath.V2Rotate(c.dir, seg.Angle)}, nil
		}

		side := vmath.Sign(seg.Angle)
		normal := vmath.V2Left(c.dir)
		center := vmath.V2AddScaled(c.point, normal, side*seg.Radius)
		step := seg.Angle / float64(steps)

		out := make([]vmath.Vec2, 0, steps)
		next := c
		for i := 1; i <= steps; i++ {
			theta := step * float64(i)
			rotated := vmath.V2Rotate(normal, theta)
			p := vmath.V2AddScaled(center, rotated, -side*seg.Radius)
			out = append(out, p)
			if i == steps {
				next = cursor{point: p, dir: vmath.V2Rotate(c.dir, theta)}
			}
		}
		return next, out
	}
	return c, nil
}

// Generate folds the segment list into a centerline polyline
// Output order is the direction of travel; the first point is the start/finish point
func Generate(segments []Segment, opts ...Option) (*Centerline, error) {
	o := genOptions{arcSteps: DefaultArcSteps}
	for _, opt := range opts {
		opt(&o)
	}

	if o.arcSteps < MinArcSteps {
		return nil, errors.Errorf("arc steps %d below minimum %d", o.arcSteps, MinArcSteps)
	}
	if !vmath.V2Finite(o.origin) || !vmath.Finite(o.heading) {
		return nil, errors.New("origin and heading must be finite")
	}

	for i, seg := range segments {
		if err := seg.Validate(); err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
	}

	cur := cursor{point: o.origin, dir: vmath.V2FromHeading(o.heading)}
	points := []vmath.Vec2{cur.point}
	for _, seg := range segments {
		var emitted []vmath.Vec2
		cur, emitted = cur.advance(seg, o.arcSteps)
		points = append(points, emitted...)
	}

	return &Centerline{
		points:       points,
		startHeading: vmath.WrapAngle(o.heading),
		endHeading:   vmath.V2Heading(cur.dir),
	}, nil
}

// MustGenerate is Generate for built-in layouts known to be valid
func MustGenerate(segments []Segment, opts ...Option) *Centerline {
	c, err := Generate(segments, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// TurnTotal sums the signed curve angles of a layout
func TurnTotal(segments []Segment) float64 {
	total := 0.0
	for _, seg := range segments {
		if seg.Kind == SegmentCurve {
			total += seg.Angle
		}
	}
	return total
}

// IsFullTurn reports whether the layout turns through a whole multiple of 2π
func IsFullTurn(segments []Segment) bool {
	turns := TurnTotal(segments) / (2 * math.Pi)
	return turns != 0 && math.Abs(turns-math.Round(turns)) < 1e-9
}
