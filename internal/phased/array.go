package phased

import (
	"fmt"
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
)

// ElementData is the per-element snapshot consumed by evaluators and
// renderers: world position, phase delay in radians, drive amplitude, and
// the outward normal bearing in degrees (a rendering hint; the field model
// treats elements as omnidirectional points).
type ElementData struct {
	X         float64
	Y         float64
	Phase     float64
	Amplitude float64
	NormalDeg float64
}

// Array is the phased-array entity. Setters clamp their argument into range,
// never reject it, and mark the cached element layout stale; the next
// evaluator call rebuilds it.
type Array struct {
	cfg   Config
	elems []ElementData
	stale bool
}

// New builds an array from a parameter record. The record passes through the
// same clamps the setters apply, so a deserialized config always yields a
// valid array.
func New(cfg Config) *Array {
	return &Array{cfg: sanitize(cfg), stale: true}
}

// NewDefault builds an array with DefaultConfig parameters.
func NewDefault() *Array {
	return New(DefaultConfig())
}

// Config returns a copy of the current parameter record.
func (a *Array) Config() Config {
	return a.cfg
}

// Wavelength returns speedOfSound/frequency.
func (a *Array) Wavelength() float64 {
	return a.cfg.SpeedOfSound / a.cfg.Frequency
}

// Aperture returns the element-count aperture (n-1)*pitch. A single element
// has zero aperture.
func (a *Array) Aperture() float64 {
	return float64(a.cfg.NumElements-1) * a.cfg.Pitch
}

// Enabled reports whether the array contributes to field and scene output.
func (a *Array) Enabled() bool {
	return a.cfg.Enabled
}

func (a *Array) SetNumElements(n int) {
	a.cfg.NumElements = clampInt(n, MinElements, MaxElements)
	a.stale = true
}

func (a *Array) SetPitch(d float64) {
	a.cfg.Pitch = floorPositive(d)
	a.stale = true
}

func (a *Array) SetFrequency(f float64) {
	a.cfg.Frequency = floorPositive(f)
	a.stale = true
}

func (a *Array) SetSteeringAngle(deg float64) {
	a.cfg.SteeringAngle = geom.Clamp(deg, MinSteeringDeg, MaxSteeringDeg)
	a.stale = true
}

func (a *Array) SetPosition(p geom.Vec2) {
	a.cfg.Position = p
	a.stale = true
}

func (a *Array) SetGeometry(g Geometry) {
	a.cfg.Geometry = normalizeGeometry(g)
	a.stale = true
}

func (a *Array) SetCurvatureRadius(r float64) {
	a.cfg.CurvatureRadius = floorPositive(r)
	a.stale = true
}

func (a *Array) SetOrientation(deg float64) {
	a.cfg.Orientation = geom.WrapDeg(deg)
	a.stale = true
}

func (a *Array) SetFocalDistance(d float64) {
	a.cfg.FocalDistance = normalizeFocal(d)
	a.stale = true
}

func (a *Array) SetAmplitude(amp float64) {
	a.cfg.Amplitude = geom.Clamp(amp, 0, MaxAmplitude)
	a.stale = true
}

func (a *Array) SetSpeedOfSound(c float64) {
	a.cfg.SpeedOfSound = floorPositive(c)
	a.stale = true
}

func (a *Array) SetEnabled(on bool) {
	a.cfg.Enabled = on
	a.stale = true
}

// Params returns the numeric parameters by name, the form the interactive
// surfaces and parameter sweeps work with.
func (a *Array) Params() map[string]float64 {
	focal := a.cfg.FocalDistance
	if math.IsInf(focal, 1) {
		focal = 0
	}
	return map[string]float64{
		"numElements":     float64(a.cfg.NumElements),
		"pitch":           a.cfg.Pitch,
		"frequency":       a.cfg.Frequency,
		"steeringAngle":   a.cfg.SteeringAngle,
		"positionX":       a.cfg.Position.X,
		"positionY":       a.cfg.Position.Y,
		"curvatureRadius": a.cfg.CurvatureRadius,
		"orientation":     a.cfg.Orientation,
		"focalDistance":   focal,
		"amplitude":       a.cfg.Amplitude,
		"speedOfSound":    a.cfg.SpeedOfSound,
	}
}

// SetParam sets a numeric parameter by name, applying the same clamp as the
// typed setter. A focalDistance of zero selects far field, matching the
// serialized form.
func (a *Array) SetParam(name string, value float64) error {
	switch name {
	case "numElements":
		a.SetNumElements(int(math.Round(value)))
	case "pitch":
		a.SetPitch(value)
	case "frequency":
		a.SetFrequency(value)
	case "steeringAngle":
		a.SetSteeringAngle(value)
	case "positionX":
		a.SetPosition(geom.Vec2{X: value, Y: a.cfg.Position.Y})
	case "positionY":
		a.SetPosition(geom.Vec2{X: a.cfg.Position.X, Y: value})
	case "curvatureRadius":
		a.SetCurvatureRadius(value)
	case "orientation":
		a.SetOrientation(value)
	case "focalDistance":
		a.SetFocalDistance(value)
	case "amplitude":
		a.SetAmplitude(value)
	case "speedOfSound":
		a.SetSpeedOfSound(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

// ElementData returns a snapshot of the element layout, or an empty slice if
// the array is disabled. The slice is a copy; callers may keep or mutate it.
func (a *Array) ElementData() []ElementData {
	if !a.cfg.Enabled {
		return nil
	}
	elems := a.elements()
	out := make([]ElementData, len(elems))
	copy(out, elems)
	return out
}

// elements returns the cached layout, rebuilding it if a setter ran since
// the last evaluation.
func (a *Array) elements() []ElementData {
	if a.stale {
		a.rebuild()
		a.stale = false
	}
	return a.elems
}

func (a *Array) waveNumber() float64 {
	return 2 * math.Pi / a.Wavelength()
}
