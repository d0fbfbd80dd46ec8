package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-racer/status"
)

// Engine tone range
const (
	humIdleFreq   = 45.0
	humRangeFreq  = 160.0
	humIdleGain   = 0.05
	humRangeGain  = 0.12
	humGlideHz    = 12.0 // how fast pitch follows the throttle, in 1/s
	humHarmonicMx = 0.35
)

// EngineHum is an endless engine tone whose pitch and loudness follow a level in [0, 1]
// SetLevel may be called from any goroutine; Stream runs on the speaker goroutine
type EngineHum struct {
	rate  beep.SampleRate
	level status.AtomicFloat

	freq  float64
	gain  float64
	phase float64
}

func NewEngineHum(rate beep.SampleRate) *EngineHum {
	return &EngineHum{rate: rate, freq: humIdleFreq, gain: humIdleGain}
}

// SetLevel sets the target level, typically the speed fraction
func (h *EngineHum) SetLevel(level float64) {
	if math.IsNaN(level) {
		level = 0
	}
	h.level.Set(math.Min(math.Max(level, 0), 1))
}

// Level returns the target level
func (h *EngineHum) Level() float64 {
	return h.level.Get()
}

// Frequency returns the current fundamental in Hz
func (h *EngineHum) Frequency() float64 {
	return h.freq
}

// TargetFrequency maps a level to its steady-state fundamental
func TargetFrequency(level float64) float64 {
	return humIdleFreq + humRangeFreq*level
}

func (h *EngineHum) Stream(samples [][2]float64) (n int, ok bool) {
	level := h.level.Get()
	targetFreq := TargetFrequency(level)
	targetGain := humIdleGain + humRangeGain*level
	// One-pole glide per sample
	k := 1 - math.Exp(-humGlideHz/float64(h.rate))

	for i := range samples {
		h.freq += (targetFreq - h.freq) * k
		h.gain += (targetGain - h.gain) * k

		// Saw body plus a half-sine bump; still one rising zero crossing per cycle
		v := waveSample(WaveSaw, h.phase)
		sub := math.Sin(math.Pi * h.phase)
		s := h.gain * ((1-humHarmonicMx)*v + humHarmonicMx*sub)
		samples[i][0] = s
		samples[i][1] = s

		h.phase += h.freq / float64(h.rate)
		h.phase -= math.Floor(h.phase)
	}
	return len(samples), true
}

func (h *EngineHum) Err() error { return nil }
