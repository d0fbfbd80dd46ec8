package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Effect durations
const (
	chimeNoteDuration = 90 * time.Millisecond
	chimeAttack       = 5 * time.Millisecond
	chimeRelease      = 60 * time.Millisecond
	crashDuration     = 450 * time.Millisecond
	crashAttack       = 2 * time.Millisecond
	crashRelease      = 350 * time.Millisecond
)

// oscillator is a fixed-length tone
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a streamer producing duration worth of the wave
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, duration: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		v := waveSample(o.wave, o.phase)
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// waveSample evaluates a unit-amplitude wave at phase in [0, 1)
func waveSample(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return math.Sin(2 * math.Pi * phase)
}

// envelope applies linear attack and release to a finite stream
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

// NewEnvelope shapes s over duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att, rel := rate.N(attack), rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: max(total-rel, att),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remaining := e.total - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		gain := 1.0
		if e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		} else if e.position >= e.releaseStart && e.release > 0 {
			gain = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func note(freq float64, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, chimeNoteDuration, wave, rate)
	return NewEnvelope(osc, chimeNoteDuration, chimeAttack, chimeRelease, rate)
}

// CreateLapChime is a rising two-note chime; a personal best adds a third note
func CreateLapChime(rate beep.SampleRate, personalBest bool) beep.Streamer {
	notes := []beep.Streamer{
		note(987.77, WaveSquare, rate),  // B5
		note(1318.51, WaveSquare, rate), // E6
	}
	if personalBest {
		notes = append(notes, note(1975.53, WaveSquare, rate)) // B6
	}
	return newVolume(beep.Seq(notes...), 0.35)
}

// CreateCrashSound is a noise burst over a low rumble
func CreateCrashSound(rate beep.SampleRate) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, crashDuration, WaveNoise, rate), crashDuration, crashAttack, crashRelease, rate)
	rumble := NewEnvelope(NewOscillator(70, crashDuration, WaveSaw, rate), crashDuration, crashAttack, crashRelease, rate)
	return beep.Mix(newVolume(noise, 0.35), newVolume(rumble, 0.5))
}
