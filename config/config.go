// Package config loads tunables from defaults, an optional config file and VIRACER_* environment variables
package config

import (
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/race"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. VIRACER_TRACK_WIDTH
	EnvPrefix = "VIRACER"
	// FileName is the config base name searched when no explicit path is given
	FileName = "vi-racer"

	MinTickRate = 10
	MaxTickRate = 240
)

// Config is the full typed configuration
type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	TickRate int            `mapstructure:"tick_rate"`
	Vehicle  physics.Params `mapstructure:"vehicle"`
	Race     race.Config    `mapstructure:"race"`
	Track    TrackConfig    `mapstructure:"track"`
	Input    InputConfig    `mapstructure:"input"`
	Audio    AudioConfig    `mapstructure:"audio"`
}

// TrackConfig describes the layout; Heading is in degrees
type TrackConfig struct {
	Width    float64             `mapstructure:"width"`
	ArcSteps int                 `mapstructure:"arc_steps"`
	Heading  float64             `mapstructure:"heading"`
	Segments []track.SegmentSpec `mapstructure:"segments"`
}

// InputConfig tunes the key latch and optional binding overrides (intent name → key names)
type InputConfig struct {
	HoldWindow time.Duration       `mapstructure:"hold_window"`
	Bindings   map[string][]string `mapstructure:"bindings"`
}

// AudioConfig toggles sound output
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// setDefaults registers every tunable so env overrides and Unmarshal see all keys
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("tick_rate", 60)

	p := physics.DefaultParams()
	v.SetDefault("vehicle.max_speed", p.MaxSpeed)
	v.SetDefault("vehicle.acceleration", p.Acceleration)
	v.SetDefault("vehicle.deceleration", p.Deceleration)
	v.SetDefault("vehicle.brake_deceleration", p.BrakeDeceleration)
	v.SetDefault("vehicle.turn_rate", p.TurnRate)
	v.SetDefault("vehicle.turn_threshold", p.TurnThreshold)
	v.SetDefault("vehicle.max_dt", p.MaxDt)

	r := race.DefaultConfig()
	v.SetDefault("race.near_threshold", r.NearThreshold)
	v.SetDefault("race.far_threshold", r.FarThreshold)

	v.SetDefault("track.width", 10.0)
	v.SetDefault("track.arc_steps", track.DefaultArcSteps)
	v.SetDefault("track.heading", 0.0)
	specs := track.DefaultSpecs()
	segments := make([]map[string]any, len(specs))
	for i, s := range specs {
		segments[i] = map[string]any{
			"type":   s.Type,
			"length": s.Length,
			"angle":  s.Angle,
			"radius": s.Radius,
		}
	}
	v.SetDefault("track.segments", segments)

	v.SetDefault("input.hold_window", "180ms")
	v.SetDefault("input.bindings", map[string][]string{})

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)
}

// Load builds the configuration; an empty path searches ./ and ~/.config/vi-racer
// for an optional vi-racer.{toml,yaml,json}
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", path)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vi-racer")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "error reading config file")
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "error decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration without touching disk or environment
func Default() *Config {
	return &Config{
		LogLevel: "info",
		TickRate: 60,
		Vehicle:  physics.DefaultParams(),
		Race:     race.DefaultConfig(),
		Track: TrackConfig{
			Width:    10,
			ArcSteps: track.DefaultArcSteps,
			Segments: track.DefaultSpecs(),
		},
		Input: InputConfig{
			HoldWindow: 180 * time.Millisecond,
			Bindings:   map[string][]string{},
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
	}
}

// Validate checks cross-field constraints and fails fast on malformed geometry
func (c *Config) Validate() error {
	if err := c.Vehicle.Validate(); err != nil {
		return errors.Wrap(err, "invalid vehicle config")
	}
	if err := c.Race.Validate(); err != nil {
		return errors.Wrap(err, "invalid race config")
	}
	if c.TickRate < MinTickRate || c.TickRate > MaxTickRate {
		return errors.Errorf("tick_rate %d outside [%d, %d]", c.TickRate, MinTickRate, MaxTickRate)
	}
	if !vmath.Finite(c.Track.Width) || c.Track.Width <= 0 {
		return errors.Errorf("track width %v must be positive", c.Track.Width)
	}
	if c.Track.ArcSteps < track.MinArcSteps {
		return errors.Errorf("track arc_steps %d below minimum %d", c.Track.ArcSteps, track.MinArcSteps)
	}
	if c.Input.HoldWindow <= 0 {
		return errors.Errorf("input hold_window %v must be positive", c.Input.HoldWindow)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.Errorf("audio volume %v outside [0, 1]", c.Audio.Volume)
	}
	if _, err := c.Segments(); err != nil {
		return err
	}
	return nil
}

// Segments parses the configured layout
func (c *Config) Segments() ([]track.Segment, error) {
	segs, err := track.ParseLayout(c.Track.Segments)
	if err != nil {
		return nil, errors.Wrap(err, "invalid track layout")
	}
	return segs, nil
}

// BuildTrack generates the centerline for the configured layout
func (c *Config) BuildTrack() (*track.Centerline, error) {
	segs, err := c.Segments()
	if err != nil {
		return nil, err
	}
	cl, err := track.Generate(segs,
		track.WithArcSteps(c.Track.ArcSteps),
		track.WithHeading(c.Track.Heading*math.Pi/180),
	)
	if err != nil {
		return nil, errors.Wrap(err, "track generation failed")
	}
	return cl, nil
}

// TickInterval is the frame period for the configured tick rate
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
