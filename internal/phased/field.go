package phased

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
)

// FieldAt returns the instantaneous pressure at (x, y) and time t: the sum
// over elements of amp/sqrt(dist+eps) * cos(k*dist - w*t + phase). Elements
// coincident with the query point are skipped, so the result is always
// finite. A disabled array contributes zero.
func (a *Array) FieldAt(x, y, t float64) float64 {
	if !a.cfg.Enabled {
		return 0
	}
	elems := a.elements()
	k := a.waveNumber()
	omega := 2 * math.Pi * a.cfg.Frequency
	q := geom.Vec2{X: x, Y: y}

	sum := 0.0
	for i := range elems {
		e := &elems[i]
		d := q.DistanceTo(geom.Vec2{X: e.X, Y: e.Y})
		if d < coincidentDist {
			continue
		}
		sum += e.Amplitude / math.Sqrt(d+spreadEpsilon) *
			math.Cos(k*d-omega*t+e.Phase)
	}
	return sum
}

// FieldPhasor returns the steady-state complex amplitude of the field at
// (x, y): FieldAt(x, y, t) equals re*cos(wt) + im*sin(wt) for all t. The
// squared magnitude re*re+im*im is the time-averaged intensity up to a
// constant factor, which is what the intensity display mode and the focal
// optimizer integrate.
func (a *Array) FieldPhasor(x, y float64) (re, im float64) {
	if !a.cfg.Enabled {
		return 0, 0
	}
	elems := a.elements()
	k := a.waveNumber()
	q := geom.Vec2{X: x, Y: y}

	for i := range elems {
		e := &elems[i]
		d := q.DistanceTo(geom.Vec2{X: e.X, Y: e.Y})
		if d < coincidentDist {
			continue
		}
		amp := e.Amplitude / math.Sqrt(d+spreadEpsilon)
		s, c := math.Sincos(k*d + e.Phase)
		re += amp * c
		im += amp * s
	}
	return re, im
}
