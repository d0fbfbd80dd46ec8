package physics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/vmath"
)

// KMHPerMS converts metres per second to kilometres per hour
const KMHPerMS = 3.6

// Controls is the per-tick input intent snapshot
type Controls struct {
	Accelerate bool
	Brake      bool
	TurnLeft   bool
	TurnRight  bool
}

// Turn returns the signed steering input: +1 left, -1 right, 0 none or both
func (c Controls) Turn() float64 {
	turn := 0.0
	if c.TurnLeft {
		turn++
	}
	if c.TurnRight {
		turn--
	}
	return turn
}

// Params is the tunable vehicle constant set
// Rates are per second; speeds in metres per second
type Params struct {
	MaxSpeed          float64 `mapstructure:"max_speed"`
	Acceleration      float64 `mapstructure:"acceleration"`
	Deceleration      float64 `mapstructure:"deceleration"`
	BrakeDeceleration float64 `mapstructure:"brake_deceleration"`
	TurnRate          float64 `mapstructure:"turn_rate"`
	TurnThreshold     float64 `mapstructure:"turn_threshold"`
	MaxDt             float64 `mapstructure:"max_dt"`
}

// DefaultParams returns the canonical arcade tuning
func DefaultParams() Params {
	return Params{
		MaxSpeed:          40,
		Acceleration:      12,
		Deceleration:      6,
		BrakeDeceleration: 30,
		TurnRate:          5,
		TurnThreshold:     0.1,
		MaxDt:             0.25,
	}
}

// Validate rejects parameter sets Step cannot integrate sensibly
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"max_speed", p.MaxSpeed},
		{"acceleration", p.Acceleration},
		{"deceleration", p.Deceleration},
		{"brake_deceleration", p.BrakeDeceleration},
		{"turn_rate", p.TurnRate},
		{"turn_threshold", p.TurnThreshold},
		{"max_dt", p.MaxDt},
	}
	for _, f := range fields {
		if !vmath.Finite(f.v) || f.v < 0 {
			return errors.Errorf("vehicle %s %v must be finite and non-negative", f.name, f.v)
		}
	}
	if p.MaxSpeed == 0 {
		return errors.New("vehicle max_speed must be positive")
	}
	if p.MaxDt == 0 {
		return errors.New("vehicle max_dt must be positive")
	}
	return nil
}

// State is an immutable vehicle snapshot
type State struct {
	Position vmath.Vec2
	Heading  float64
	Speed    float64
	Controls Controls
}

// Spawn returns a stationary vehicle at the given pose
func Spawn(position vmath.Vec2, heading float64) State {
	return State{Position: position, Heading: vmath.WrapAngle(heading)}
}

// Forward returns the unit direction of travel
func (s State) Forward() vmath.Vec2 {
	return vmath.V2FromHeading(s.Heading)
}

// SpeedKMH returns the display speed
func (s State) SpeedKMH() float64 {
	return math.Abs(s.Speed) * KMHPerMS
}

// SpeedFraction is |speed| / max speed in [0, 1]
func (s State) SpeedFraction(p Params) float64 {
	if p.MaxSpeed <= 0 {
		return 0
	}
	return vmath.ClampF(math.Abs(s.Speed)/p.MaxSpeed, 0, 1)
}

// sanitizeDt maps NaN and negative steps to zero and caps long stalls
func sanitizeDt(dt float64, p Params) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if p.MaxDt > 0 && dt > p.MaxDt {
		return p.MaxDt
	}
	return dt
}

// sanitizeState resets non-finite fields so a corrupt snapshot cannot poison integration
func sanitizeState(s State) State {
	if !vmath.V2Finite(s.Position) {
		s.Position = vmath.Vec2{}
	}
	if !vmath.Finite(s.Heading) {
		s.Heading = 0
	}
	if !vmath.Finite(s.Speed) {
		s.Speed = 0
	}
	return s
}

// Step integrates one tick and returns the next state
// Brake decelerates toward a stop; the vehicle never reverses
func Step(s State, in Controls, dt float64, p Params) State {
	s = sanitizeState(s)
	dt = sanitizeDt(dt, p)
	s.Controls = in

	// Speed
	switch {
	case in.Brake:
		s.Speed = vmath.Approach(s.Speed, 0, p.BrakeDeceleration*dt)
	case in.Accelerate:
		s.Speed = vmath.Approach(s.Speed, p.MaxSpeed, p.Acceleration*dt)
	default:
		s.Speed = vmath.Approach(s.Speed, 0, p.Deceleration*dt)
	}
	s.Speed = vmath.ClampF(s.Speed, 0, p.MaxSpeed)

	// Heading, authority scales with speed fraction so a parked car cannot pivot
	if math.Abs(s.Speed) > p.TurnThreshold {
		s.Heading = vmath.WrapAngle(s.Heading + in.Turn()*p.TurnRate*dt*s.SpeedFraction(p))
	}

	// Position
	s.Position = vmath.V2AddScaled(s.Position, vmath.V2FromHeading(s.Heading), s.Speed*dt)

	return s
}
