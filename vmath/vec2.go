package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is a float64 ground-plane vector (x, z); height is implicit and constant
// Arithmetic goes through mgl64 with z in the second slot
type Vec2 struct {
	X, Z float64
}

func V2(x, z float64) Vec2 {
	return Vec2{X: x, Z: z}
}

func (v Vec2) gl() mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Z}
}

func fromGL(v mgl64.Vec2) Vec2 {
	return Vec2{X: v[0], Z: v[1]}
}

func V2Add(a, b Vec2) Vec2 {
	return fromGL(a.gl().Add(b.gl()))
}

func V2Sub(a, b Vec2) Vec2 {
	return fromGL(a.gl().Sub(b.gl()))
}

func V2Scale(v Vec2, s float64) Vec2 {
	return fromGL(v.gl().Mul(s))
}

// V2AddScaled returns a + v*s
func V2AddScaled(a, v Vec2, s float64) Vec2 {
	return fromGL(a.gl().Add(v.gl().Mul(s)))
}

func V2Dot(a, b Vec2) float64 {
	return a.gl().Dot(b.gl())
}

func V2MagSq(v Vec2) float64 {
	return v.gl().LenSqr()
}

func V2Mag(v Vec2) float64 {
	return v.gl().Len()
}

// V2Dist returns Euclidean distance between two points
func V2Dist(a, b Vec2) float64 {
	return a.gl().Sub(b.gl()).Len()
}

// V2Normalize returns the unit vector; zero stays zero instead of going to Inf
func V2Normalize(v Vec2) Vec2 {
	g := v.gl()
	if g.Len() == 0 {
		return Vec2{}
	}
	return fromGL(g.Normalize())
}

// V2FromHeading returns the unit forward vector for a yaw angle
// Heading 0 faces +Z; positive heading turns toward +X (left turn)
func V2FromHeading(heading float64) Vec2 {
	sin, cos := math.Sincos(heading)
	return Vec2{sin, cos}
}

// V2Heading is the inverse of V2FromHeading, zero vector yields 0
func V2Heading(v Vec2) float64 {
	if v.X == 0 && v.Z == 0 {
		return 0
	}
	return math.Atan2(v.X, v.Z)
}

// V2Rotate rotates v about the vertical axis by angle, same sense as heading
// mgl64 rotates counter-clockwise in (x, y), which is the opposite sense in (x, z)
func V2Rotate(v Vec2, angle float64) Vec2 {
	return fromGL(mgl64.Rotate2D(-angle).Mul2x1(v.gl()))
}

// V2Left returns v rotated +90° (left-hand perpendicular in heading sense)
func V2Left(v Vec2) Vec2 {
	return Vec2{v.Z, -v.X}
}

// V2Finite reports whether both components are finite
func V2Finite(v Vec2) bool {
	return Finite(v.X) && Finite(v.Z)
}

// V2ApproxEqual compares component-wise within eps
func V2ApproxEqual(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// V2Lerp interpolates from a to b by t; t is not clamped
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return fromGL(a.gl().Add(b.gl().Sub(a.gl()).Mul(t)))
}
