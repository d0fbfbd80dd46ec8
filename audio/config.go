package audio

import "github.com/pkg/errors"

// DefaultSampleRate is the speaker rate in Hz
const DefaultSampleRate = 48000

// Config controls the sound manager
type Config struct {
	Enabled    bool
	Volume     float64 // master volume in [0, 1]
	SampleRate int
}

// DefaultConfig returns audio on at half volume
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.5, SampleRate: DefaultSampleRate}
}

// Validate rejects unusable settings
func (c Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return errors.Errorf("audio volume %v outside [0, 1]", c.Volume)
	}
	if c.SampleRate <= 0 {
		return errors.Errorf("audio sample rate %d must be positive", c.SampleRate)
	}
	return nil
}
