package render

import "github.com/gdamore/tcell/v2"

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Lerp interpolates per channel, t clamped to [0, 1]
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}
}

// Scale multiplies every channel by factor, clamped to [0, 255]
func Scale(c RGB, factor float64) RGB {
	ch := func(v uint8) uint8 {
		f := float64(v) * factor
		switch {
		case f <= 0:
			return 0
		case f >= 255:
			return 255
		}
		return uint8(f + 0.5)
	}
	return RGB{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
