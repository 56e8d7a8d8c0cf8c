package phased

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
)

// BeamResponse returns the raw complex far-field response at an observation
// bearing (degrees, same convention as the steering angle). Each element
// contributes amp * e^(j*(k*path + phase)) with path the projection of its
// world position onto the observation direction. The result is unnormalized
// so multiple arrays can be composed before normalizing; BeamPattern is the
// single-array normalized form. A disabled array contributes zero, like the
// field evaluators.
func (a *Array) BeamResponse(angleDeg float64) (re, im float64) {
	if !a.cfg.Enabled {
		return 0, 0
	}
	elems := a.elements()
	k := a.waveNumber()
	dir := geom.Heading(angleDeg)

	for i := range elems {
		e := &elems[i]
		path := e.X*dir.X + e.Y*dir.Y
		s, c := math.Sincos(k*path + e.Phase)
		re += e.Amplitude * c
		im += e.Amplitude * s
	}
	return re, im
}

// BeamPattern returns the normalized far-field intensity at an observation
// bearing: |response|^2 / (n*amp)^2, so a perfectly phased array peaks at
// 1.0 in its steering direction.
func (a *Array) BeamPattern(angleDeg float64) float64 {
	re, im := a.BeamResponse(angleDeg)
	norm := float64(a.cfg.NumElements) * a.cfg.Amplitude
	if norm == 0 {
		return 0
	}
	return (re*re + im*im) / (norm * norm)
}
