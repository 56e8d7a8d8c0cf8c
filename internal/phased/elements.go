package phased

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
)

// rebuild recomputes the world-space element layout and per-element phase
// delays from the current config. Runs lazily: every evaluator reaches the
// cache through elements().
func (a *Array) rebuild() {
	cfg := a.cfg
	n := cfg.NumElements
	elems := make([]ElementData, n)

	for i := 0; i < n; i++ {
		local, alpha := a.localElement(i)
		world := cfg.Position.Add(geom.RotateBearing(local, cfg.Orientation))
		elems[i] = ElementData{
			X:         world.X,
			Y:         world.Y,
			Amplitude: cfg.Amplitude,
			NormalDeg: cfg.Orientation + geom.Rad2Deg(alpha) + 90,
		}
	}

	a.applyPhases(elems)
	a.elems = elems
}

// localElement returns element i's position in the array frame (origin at
// the array position, +X along the element line, +Y broadside) and its arc
// angle alpha in radians. Linear layouts have alpha 0.
func (a *Array) localElement(i int) (geom.Vec2, float64) {
	cfg := a.cfg
	n := cfg.NumElements

	if cfg.Geometry == GeometryCurved {
		r := cfg.CurvatureRadius
		alpha := 0.0
		if n > 1 {
			span := float64(n-1) * cfg.Pitch / r
			alpha = -span/2 + float64(i)/float64(n-1)*span
		}
		return geom.Vec2{
			X: r * math.Sin(alpha),
			Y: r * (1 - math.Cos(alpha)),
		}, alpha
	}

	x := -float64(n-1)*cfg.Pitch/2 + float64(i)*cfg.Pitch
	return geom.Vec2{X: x}, 0
}

// applyPhases fills in the phase delay of each element: plane-wave steering
// when the focal distance is infinite, otherwise focusing on the point at
// the focal distance along the steering direction. Phases are relative path
// compensation, so the steered or focused wavefronts arrive in step.
func (a *Array) applyPhases(elems []ElementData) {
	cfg := a.cfg
	k := a.waveNumber()
	dir := geom.Heading(cfg.SteeringAngle + cfg.Orientation)

	if math.IsInf(cfg.FocalDistance, 1) {
		for i := range elems {
			d := geom.Vec2{X: elems[i].X, Y: elems[i].Y}.Sub(cfg.Position)
			elems[i].Phase = -k * d.Dot(dir)
		}
		return
	}

	focus := cfg.Position.Add(dir.Scale(cfg.FocalDistance))
	for i := range elems {
		d := focus.DistanceTo(geom.Vec2{X: elems[i].X, Y: elems[i].Y})
		elems[i].Phase = -k * (d - cfg.FocalDistance)
	}
}
