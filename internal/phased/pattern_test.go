package phased

import (
	"math"
	"testing"
)

// steeredHalfWave builds the canonical steering testbed: 11 elements at
// half-wavelength pitch, steered 30 degrees.
func steeredHalfWave() *Array {
	a := NewDefault()
	a.SetNumElements(11)
	a.SetPitch(a.Wavelength() / 2)
	a.SetSteeringAngle(30)
	return a
}

func TestBeamPatternPeakAtSteering(t *testing.T) {
	a := steeredHalfWave()

	if got := a.BeamPattern(30); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected unity peak at steering angle, got %v", got)
	}
}

func TestBeamPatternNullOffPeak(t *testing.T) {
	a := steeredHalfWave()

	if got := a.BeamPattern(120); got > 0.01 {
		t.Errorf("expected deep null at 120 degrees, got %v", got)
	}
}

func TestBeamPatternBroadsideSymmetry(t *testing.T) {
	a := NewDefault()
	a.SetNumElements(11)
	a.SetPitch(a.Wavelength() / 2)

	for _, deg := range []float64{10, 25, 40, 60, 85} {
		p, m := a.BeamPattern(deg), a.BeamPattern(-deg)
		if math.Abs(p-m) > 1e-9 {
			t.Errorf("pattern asymmetric at %v: %v vs %v", deg, p, m)
		}
	}
}

func TestBeamResponseMatchesPattern(t *testing.T) {
	a := steeredHalfWave()
	n := float64(a.Config().NumElements)
	amp := a.Config().Amplitude

	for _, deg := range []float64{-60, -15, 0, 30, 45, 80} {
		re, im := a.BeamResponse(deg)
		want := (re*re + im*im) / (n * n * amp * amp)
		if got := a.BeamPattern(deg); math.Abs(got-want) > 1e-12 {
			t.Errorf("at %v: pattern %v, response-derived %v", deg, got, want)
		}
	}
}

func TestBeamPatternAmplitudeInvariant(t *testing.T) {
	a := steeredHalfWave()
	base := a.BeamPattern(42)

	a.SetAmplitude(2)
	if got := a.BeamPattern(42); math.Abs(got-base) > 1e-12 {
		t.Errorf("normalized pattern changed with amplitude: %v vs %v", got, base)
	}

	// The raw response does scale.
	re1, im1 := a.BeamResponse(42)
	a.SetAmplitude(1)
	re2, im2 := a.BeamResponse(42)
	if math.Abs(re1-2*re2) > 1e-9 || math.Abs(im1-2*im2) > 1e-9 {
		t.Errorf("expected raw response to scale with amplitude: (%v,%v) vs (%v,%v)",
			re1, im1, re2, im2)
	}
}

func TestBeamPatternSingleElementOmni(t *testing.T) {
	a := NewDefault()
	a.SetNumElements(1)

	for deg := -90.0; deg <= 90; deg += 15 {
		if got := a.BeamPattern(deg); math.Abs(got-1.0) > 1e-12 {
			t.Errorf("expected omnidirectional unity at %v, got %v", deg, got)
		}
	}
}

func TestBeamPatternZeroAmplitude(t *testing.T) {
	a := NewDefault()
	a.SetAmplitude(0)

	if got := a.BeamPattern(0); got != 0 {
		t.Errorf("expected zero pattern at zero amplitude, got %v", got)
	}
}

func TestBeamPatternDisabledArray(t *testing.T) {
	a := steeredHalfWave()
	a.SetEnabled(false)

	re, im := a.BeamResponse(30)
	if re != 0 || im != 0 {
		t.Errorf("expected zero response from a disabled array, got (%v, %v)", re, im)
	}
	if got := a.BeamPattern(30); got != 0 {
		t.Errorf("expected zero pattern from a disabled array, got %v", got)
	}

	a.SetEnabled(true)
	if got := a.BeamPattern(30); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected unity peak after re-enabling, got %v", got)
	}
}

func TestBeamPatternGratingLobe(t *testing.T) {
	// Full-wavelength pitch aliases the mainlobe to +/-90 degrees.
	a := NewDefault()
	a.SetNumElements(8)
	a.SetPitch(a.Wavelength())

	for _, deg := range []float64{-90, 90} {
		if got := a.BeamPattern(deg); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("expected grating lobe at %v, got %v", deg, got)
		}
	}
}
