package track

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/vi-racer/vmath"
)

// SegmentKind discriminates track segment variants
type SegmentKind uint8

const (
	SegmentStraight SegmentKind = iota
	SegmentCurve
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentStraight:
		return "straight"
	case SegmentCurve:
		return "curve"
	default:
		return "unknown"
	}
}

// Segment is one declarative piece of a track layout
// Straight uses Length; Curve uses Angle (radians, positive turns left) and Radius
type Segment struct {
	Kind   SegmentKind
	Length float64
	Angle  float64
	Radius float64
}

// Straight returns a straight run of the given length
func Straight(length float64) Segment {
	return Segment{Kind: SegmentStraight, Length: length}
}

// Curve returns a fixed-radius arc turning by angle radians
func Curve(angle, radius float64) Segment {
	return Segment{Kind: SegmentCurve, Angle: angle, Radius: radius}
}

// Validate rejects non-finite or negative geometry
func (s Segment) Validate() error {
	switch s.Kind {
	case SegmentStraight:
		if !vmath.Finite(s.Length) || s.Length < 0 {
			return errors.Errorf("straight length %v must be finite and non-negative", s.Length)
		}
	case SegmentCurve:
		if !vmath.Finite(s.Radius) || s.Radius < 0 {
			return errors.Errorf("curve radius %v must be finite and non-negative", s.Radius)
		}
		if !vmath.Finite(s.Angle) || math.Abs(s.Angle) > 2*math.Pi {
			return errors.Errorf("curve angle %v must be finite and within ±2π", s.Angle)
		}
	default:
		return errors.Errorf("unknown segment kind %d", s.Kind)
	}
	return nil
}

// SegmentSpec is the config-file form of a segment; Angle is in degrees
type SegmentSpec struct {
	Type   string  `mapstructure:"type" json:"type"`
	Length float64 `mapstructure:"length" json:"length"`
	Angle  float64 `mapstructure:"angle" json:"angle"`
	Radius float64 `mapstructure:"radius" json:"radius"`
}

// ParseLayout converts config descriptors into validated segments
func ParseLayout(specs []SegmentSpec) ([]Segment, error) {
	segments := make([]Segment, 0, len(specs))
	for i, spec := range specs {
		var seg Segment
		switch strings.ToLower(strings.TrimSpace(spec.Type)) {
		case "straight", "s":
			seg = Straight(spec.Length)
		case "curve", "c", "arc":
			seg = Curve(spec.Angle*math.Pi/180, spec.Radius)
		default:
			return nil, errors.Errorf("segment %d: unknown type %q", i, spec.Type)
		}
		if err := seg.Validate(); err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// DefaultLayout is the stock closed loop: two straights of each length joined by four left-hand quarter turns
func DefaultLayout() []Segment {
	return []Segment{
		Straight(20),
		Curve(math.Pi/2, 10),
		Straight(15),
		Curve(math.Pi/2, 10),
		Straight(20),
		Curve(math.Pi/2, 10),
		Straight(15),
		Curve(math.Pi/2, 10),
	}
}

// DefaultSpecs mirrors DefaultLayout in config form
func DefaultSpecs() []SegmentSpec {
	layout := DefaultLayout()
	specs := make([]SegmentSpec, len(layout))
	for i, seg := range layout {
		specs[i] = SegmentSpec{
			Type:   seg.Kind.String(),
			Length: seg.Length,
			Angle:  seg.Angle * 180 / math.Pi,
			Radius: seg.Radius,
		}
	}
	return specs
}
