package analysis

import (
	"math"
	"testing"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

func steeredArray() *phased.Array {
	a := phased.NewDefault()
	a.SetNumElements(11)
	a.SetPitch(a.Wavelength() / 2)
	a.SetSteeringAngle(30)
	return a
}

func TestPatternSeriesRange(t *testing.T) {
	series := PatternSeries(phased.NewDefault(), -90, 90, 1)

	if len(series) != 181 {
		t.Fatalf("expected 181 points, got %d", len(series))
	}
	if series[0].AngleDeg != -90 || series[180].AngleDeg != 90 {
		t.Errorf("expected sweep from -90 to 90, got %v to %v",
			series[0].AngleDeg, series[180].AngleDeg)
	}
}

func TestPatternSeriesIncludesEndpoint(t *testing.T) {
	series := PatternSeries(phased.NewDefault(), 0, 10, 3)

	last := series[len(series)-1]
	if math.Abs(last.AngleDeg-10) > 1e-9 {
		t.Errorf("expected endpoint 10, got %v", last.AngleDeg)
	}
}

func TestLobesSteeredPeak(t *testing.T) {
	series := PatternSeries(steeredArray(), -90, 90, 0.25)
	m := Lobes(series)

	if math.Abs(m.PeakAngleDeg-30) > 0.25 {
		t.Errorf("expected peak near 30, got %v", m.PeakAngleDeg)
	}
	if math.Abs(m.PeakValue-1.0) > 1e-6 {
		t.Errorf("expected unity peak, got %v", m.PeakValue)
	}
	if m.BeamwidthDeg < 5 || m.BeamwidthDeg > 15 {
		t.Errorf("expected beamwidth around 10 degrees, got %v", m.BeamwidthDeg)
	}
	if !m.HasSidelobe {
		t.Fatal("expected side lobes for an 11-element array")
	}
	if m.SidelobeDB > -10 {
		t.Errorf("expected side lobes below -10 dB, got %v", m.SidelobeDB)
	}
}

func TestLobesOmni(t *testing.T) {
	a := phased.NewDefault()
	a.SetNumElements(1)

	m := Lobes(PatternSeries(a, -90, 90, 1))
	if math.Abs(m.PeakValue-1.0) > 1e-9 {
		t.Errorf("expected flat unity pattern, got peak %v", m.PeakValue)
	}
	if m.BeamwidthDeg != 0 {
		t.Errorf("expected no half-power crossing, got beamwidth %v", m.BeamwidthDeg)
	}
	if m.HasSidelobe {
		t.Error("expected no side lobe on a flat pattern")
	}
}

func TestLobesEmpty(t *testing.T) {
	m := Lobes(nil)
	if m.PeakValue != 0 || m.HasSidelobe {
		t.Errorf("expected zero metrics for empty series, got %+v", m)
	}
}

func TestScenePatternSeries(t *testing.T) {
	s := scene.New()
	s.Add(steeredArray())

	series := ScenePatternSeries(s, 25, 35, 0.5)
	m := Lobes(series)
	if math.Abs(m.PeakAngleDeg-30) > 0.5 {
		t.Errorf("expected composite peak near 30, got %v", m.PeakAngleDeg)
	}
}

func TestIntensities(t *testing.T) {
	series := []PatternPoint{{0, 0.5}, {1, 1.0}, {2, 0.25}}
	got := Intensities(series)

	if len(got) != 3 || got[1] != 1.0 || got[2] != 0.25 {
		t.Errorf("expected stripped intensities, got %v", got)
	}
}
