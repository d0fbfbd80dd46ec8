package vmath

import "math"

// Finite reports whether f is neither NaN nor ±Inf
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach moves cur toward target by at most maxDelta without overshooting
func Approach(cur, target, maxDelta float64) float64 {
	if maxDelta <= 0 {
		return cur
	}
	if cur < target {
		cur += maxDelta
		if cur > target {
			cur = target
		}
		return cur
	}
	if cur > target {
		cur -= maxDelta
		if cur < target {
			cur = target
		}
	}
	return cur
}

// WrapAngle maps an angle into (-π, π]
func WrapAngle(a float64) float64 {
	if !Finite(a) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// AngDiff returns the signed shortest rotation from a to b in (-π, π]
func AngDiff(a, b float64) float64 {
	return WrapAngle(b - a)
}

// Sign returns -1, 0 or 1
func Sign(f float64) float64 {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}
