package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/race"
)

// speakerBuffer is the speaker latency
const speakerBuffer = 100 * time.Millisecond

// SoundManager owns the speaker, the engine hum and one-shot effects
// Every method is safe before Initialize and after a failed Initialize; the game runs silent
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	log         zerolog.Logger
	mixer       *beep.Mixer
	master      *effects.Volume
	hum         *EngineHum
	humCtrl     *beep.Ctrl
	initialized bool
	muted       bool
}

// NewSoundManager creates a manager; nothing is opened until Initialize
func NewSoundManager(cfg Config, log zerolog.Logger) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	rate := beep.SampleRate(cfg.SampleRate)
	sm := &SoundManager{
		cfg:   cfg,
		rate:  rate,
		log:   log.With().Str("component", "audio").Logger(),
		mixer: &beep.Mixer{},
		hum:   NewEngineHum(rate),
		muted: !cfg.Enabled,
	}
	sm.humCtrl = &beep.Ctrl{Streamer: sm.hum, Paused: true}
	sm.master = newVolume(sm.mixer, cfg.Volume)
	sm.master.Silent = sm.master.Silent || sm.muted
	return sm
}

// Initialize opens the speaker; a missing audio device is returned but not fatal
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		sm.log.Info().Msg("audio disabled")
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(speakerBuffer)); err != nil {
		sm.log.Warn().Err(err).Msg("speaker unavailable, running silent")
		return errors.Wrap(err, "speaker init")
	}

	sm.mixer.Add(sm.humCtrl)
	speaker.Play(sm.master)
	sm.initialized = true
	sm.log.Info().Int("sample_rate", int(sm.rate)).Float64("volume", sm.cfg.Volume).Msg("audio initialized")
	return nil
}

// Cleanup stops all sound and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.humCtrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Hum returns the engine tone generator
func (sm *SoundManager) Hum() *EngineHum {
	return sm.hum
}

// SetEngineLevel sets the hum level; zero pauses the hum once the car stops
func (sm *SoundManager) SetEngineLevel(level float64) {
	sm.hum.SetLevel(level)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	paused := level <= 0
	speaker.Lock()
	sm.humCtrl.Paused = paused
	speaker.Unlock()
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted
	silent := sm.muted || sm.cfg.Volume <= 0
	if sm.initialized {
		speaker.Lock()
		sm.master.Silent = silent
		speaker.Unlock()
	} else {
		sm.master.Silent = silent
	}
	sm.log.Debug().Bool("muted", sm.muted).Msg("mute toggled")
	return sm.muted
}

// PlayLapChime plays the lap-completed chime
func (sm *SoundManager) PlayLapChime(personalBest bool) {
	sm.play(CreateLapChime(sm.rate, personalBest))
}

// PlayCrash plays the off-track sound
func (sm *SoundManager) PlayCrash() {
	sm.play(CreateCrashSound(sm.rate))
}

// HandleEvents plays the sounds for a tick's race events
func (sm *SoundManager) HandleEvents(events []race.Event) {
	for _, ev := range events {
		switch ev.Type {
		case race.EventLapCompleted:
			sm.PlayLapChime(ev.PersonalBest)
		case race.EventOffTrack:
			sm.SetEngineLevel(0)
			sm.PlayCrash()
		}
	}
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
