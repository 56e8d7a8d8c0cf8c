package phased

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
)

// Geometry selects the element layout of an array.
type Geometry string

const (
	// GeometryLinear places elements on a straight line through the array
	// position, perpendicular to broadside.
	GeometryLinear Geometry = "linear"

	// GeometryCurved places elements on a circular arc of the configured
	// curvature radius, bulging toward broadside at the arc edges.
	GeometryCurved Geometry = "curved"
)

// Parameter bounds. Setters clamp to these instead of returning errors.
const (
	MinElements = 1
	MaxElements = 64

	MinSteeringDeg = -90.0
	MaxSteeringDeg = 90.0

	MaxAmplitude = 2.0

	// MinPositive floors the strictly-positive parameters (pitch, frequency,
	// curvature radius, speed of sound). It only forbids zero and negative
	// values; the model is unit-agnostic.
	MinPositive = 1e-6
)

const (
	// spreadEpsilon regularizes the 1/sqrt(r) spreading factor so the field
	// stays finite at an element face.
	spreadEpsilon = 1e-4

	// coincidentDist is the radius around an element inside which a query
	// point is treated as coincident and the element's contribution skipped.
	coincidentDist = 1e-6
)

// Config is the full parameter record of an array. It is the serialization
// unit: New(a.Config()) reproduces an array exactly.
//
// FocalDistance is +Inf for a far-field (plane steering) array; any value
// less than or equal to zero is coerced to +Inf.
type Config struct {
	NumElements     int
	Pitch           float64
	Frequency       float64
	SteeringAngle   float64
	Position        geom.Vec2
	Geometry        Geometry
	CurvatureRadius float64
	Orientation     float64
	FocalDistance   float64
	Amplitude       float64
	SpeedOfSound    float64
	Enabled         bool
}

// DefaultConfig returns the stock 16-element linear ultrasonic array:
// 40 kHz in air, 5 mm pitch, unsteered, far-field focus, placed 0.1 below
// the origin so the default viewport looks down its broadside.
func DefaultConfig() Config {
	return Config{
		NumElements:     16,
		Pitch:           0.005,
		Frequency:       40000,
		SteeringAngle:   0,
		Position:        geom.Vec2{X: 0, Y: -0.1},
		Geometry:        GeometryLinear,
		CurvatureRadius: 0.1,
		Orientation:     0,
		FocalDistance:   math.Inf(1),
		Amplitude:       1.0,
		SpeedOfSound:    343,
		Enabled:         true,
	}
}

// sanitize applies every setter clamp to a raw record. Deserialized and
// hand-built configs pass through here so an Array can never hold an
// out-of-range state.
func sanitize(cfg Config) Config {
	cfg.NumElements = clampInt(cfg.NumElements, MinElements, MaxElements)
	cfg.Pitch = floorPositive(cfg.Pitch)
	cfg.Frequency = floorPositive(cfg.Frequency)
	cfg.SteeringAngle = geom.Clamp(cfg.SteeringAngle, MinSteeringDeg, MaxSteeringDeg)
	cfg.Geometry = normalizeGeometry(cfg.Geometry)
	cfg.CurvatureRadius = floorPositive(cfg.CurvatureRadius)
	cfg.Orientation = geom.WrapDeg(cfg.Orientation)
	cfg.FocalDistance = normalizeFocal(cfg.FocalDistance)
	cfg.Amplitude = geom.Clamp(cfg.Amplitude, 0, MaxAmplitude)
	cfg.SpeedOfSound = floorPositive(cfg.SpeedOfSound)
	return cfg
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorPositive(v float64) float64 {
	if math.IsNaN(v) || v < MinPositive {
		return MinPositive
	}
	return v
}

func normalizeGeometry(g Geometry) Geometry {
	if g == GeometryCurved {
		return GeometryCurved
	}
	return GeometryLinear
}

// normalizeFocal coerces non-physical focal distances to far field. NaN is
// included: it fails every comparison, so the <=0 rule alone would leak it
// into the phase terms.
func normalizeFocal(f float64) float64 {
	if math.IsNaN(f) || f <= 0 {
		return math.Inf(1)
	}
	return f
}
