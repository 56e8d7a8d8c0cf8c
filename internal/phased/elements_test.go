package phased

import (
	"math"
	"testing"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
)

func TestLinearLayoutSymmetry(t *testing.T) {
	a := NewDefault()
	elems := a.ElementData()

	if len(elems) != 16 {
		t.Fatalf("expected 16 elements, got %d", len(elems))
	}

	// Elements mirror about the array position.
	for i := 0; i < len(elems)/2; i++ {
		j := len(elems) - 1 - i
		if math.Abs(elems[i].X+elems[j].X) > 1e-12 {
			t.Errorf("elements %d/%d not symmetric: x=%v and %v", i, j, elems[i].X, elems[j].X)
		}
	}

	// Unrotated linear elements share the array's y.
	for i, e := range elems {
		if math.Abs(e.Y-(-0.1)) > 1e-12 {
			t.Errorf("element %d: expected y=-0.1, got %v", i, e.Y)
		}
	}

	// Neighbor spacing equals the pitch.
	for i := 1; i < len(elems); i++ {
		if gap := elems[i].X - elems[i-1].X; math.Abs(gap-0.005) > 1e-12 {
			t.Errorf("expected pitch 0.005 between elements, got %v", gap)
		}
	}
}

func TestLinearLayoutOrientation(t *testing.T) {
	a := New(Config{
		NumElements:  3,
		Pitch:        0.01,
		Frequency:    40000,
		SpeedOfSound: 343,
		Geometry:     GeometryLinear,
		Orientation:  90,
		Amplitude:    1,
		Enabled:      true,
	})

	elems := a.ElementData()
	want := []geom.Vec2{{X: 0, Y: 0.01}, {X: 0, Y: 0}, {X: 0, Y: -0.01}}
	for i, w := range want {
		if math.Abs(elems[i].X-w.X) > 1e-12 || math.Abs(elems[i].Y-w.Y) > 1e-12 {
			t.Errorf("element %d: expected (%v,%v), got (%v,%v)",
				i, w.X, w.Y, elems[i].X, elems[i].Y)
		}
	}
}

func TestCurvedSingleElement(t *testing.T) {
	a := NewDefault()
	a.SetGeometry(GeometryCurved)
	a.SetNumElements(1)
	a.SetPosition(geom.Vec2{X: 0.3, Y: 0.4})

	elems := a.ElementData()
	if len(elems) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elems))
	}
	if math.Abs(elems[0].X-0.3) > 1e-12 || math.Abs(elems[0].Y-0.4) > 1e-12 {
		t.Errorf("expected single element at array position, got (%v,%v)",
			elems[0].X, elems[0].Y)
	}
	if math.Abs(elems[0].NormalDeg-90) > 1e-9 {
		t.Errorf("expected normal 90, got %v", elems[0].NormalDeg)
	}
}

func TestCurvedLayout(t *testing.T) {
	a := New(Config{
		NumElements:     3,
		Pitch:           0.01,
		Frequency:       40000,
		SpeedOfSound:    343,
		Geometry:        GeometryCurved,
		CurvatureRadius: 0.1,
		Amplitude:       1,
		Enabled:         true,
	})

	elems := a.ElementData()
	span := 2 * 0.01 / 0.1 // (n-1)*pitch/R
	alpha := span / 2

	wantX := 0.1 * math.Sin(alpha)
	wantY := 0.1 * (1 - math.Cos(alpha))

	if math.Abs(elems[1].X) > 1e-12 || math.Abs(elems[1].Y) > 1e-12 {
		t.Errorf("expected center element at origin, got (%v,%v)", elems[1].X, elems[1].Y)
	}
	if math.Abs(elems[2].X-wantX) > 1e-12 || math.Abs(elems[2].Y-wantY) > 1e-12 {
		t.Errorf("expected edge element at (%v,%v), got (%v,%v)",
			wantX, wantY, elems[2].X, elems[2].Y)
	}
	if math.Abs(elems[0].X+wantX) > 1e-12 || math.Abs(elems[0].Y-wantY) > 1e-12 {
		t.Errorf("expected mirrored edge element, got (%v,%v)", elems[0].X, elems[0].Y)
	}

	// Edge elements sit forward of the center: the arc bulges toward +Y.
	if elems[0].Y <= elems[1].Y {
		t.Error("expected arc edges forward of center")
	}

	// Outward normals fan out by the arc angle.
	if math.Abs(elems[1].NormalDeg-90) > 1e-9 {
		t.Errorf("expected center normal 90, got %v", elems[1].NormalDeg)
	}
	if math.Abs(elems[2].NormalDeg-(90+geom.Rad2Deg(alpha))) > 1e-9 {
		t.Errorf("expected edge normal %v, got %v", 90+geom.Rad2Deg(alpha), elems[2].NormalDeg)
	}
}

func TestFarFieldPhases(t *testing.T) {
	// lambda = 0.02, so k = 100*pi.
	a := New(Config{
		NumElements:   3,
		Pitch:         0.01,
		Frequency:     17000,
		SpeedOfSound:  340,
		Geometry:      GeometryLinear,
		SteeringAngle: 30,
		Amplitude:     1,
		Enabled:       true,
	})

	elems := a.ElementData()
	k := 2 * math.Pi / 0.02

	// phase_i = -k * x_i * sin(30)
	want := []float64{k * 0.01 * 0.5, 0, -k * 0.01 * 0.5}
	for i, w := range want {
		if math.Abs(elems[i].Phase-w) > 1e-9 {
			t.Errorf("element %d: expected phase %v, got %v", i, w, elems[i].Phase)
		}
	}
}

func TestFarFieldUnsteeredPhasesZero(t *testing.T) {
	a := NewDefault()
	for _, e := range a.ElementData() {
		if math.Abs(e.Phase) > 1e-12 {
			t.Errorf("expected zero phase for unsteered broadside, got %v", e.Phase)
		}
	}
}

func TestNearFieldPhases(t *testing.T) {
	a := New(Config{
		NumElements:   3,
		Pitch:         0.01,
		Frequency:     17000,
		SpeedOfSound:  340,
		Geometry:      GeometryLinear,
		FocalDistance: 0.1,
		Amplitude:     1,
		Enabled:       true,
	})

	elems := a.ElementData()
	k := 2 * math.Pi / 0.02

	if math.Abs(elems[1].Phase) > 1e-9 {
		t.Errorf("expected zero phase at the focus axis element, got %v", elems[1].Phase)
	}

	want := -k * (math.Hypot(0.1, 0.01) - 0.1)
	if math.Abs(elems[0].Phase-want) > 1e-9 {
		t.Errorf("expected outer phase %v, got %v", want, elems[0].Phase)
	}
	if math.Abs(elems[0].Phase-elems[2].Phase) > 1e-12 {
		t.Errorf("expected symmetric outer phases, got %v and %v",
			elems[0].Phase, elems[2].Phase)
	}
}

func TestOrientationDoesNotDistortPhases(t *testing.T) {
	// Rotating array and steering together must preserve the relative
	// phase profile.
	base := NewDefault()
	base.SetSteeringAngle(20)

	rotated := NewDefault()
	rotated.SetSteeringAngle(20)
	rotated.SetOrientation(35)

	eb, er := base.ElementData(), rotated.ElementData()
	for i := range eb {
		if math.Abs(eb[i].Phase-er[i].Phase) > 1e-9 {
			t.Errorf("element %d: phase changed under rotation: %v vs %v",
				i, eb[i].Phase, er[i].Phase)
		}
	}
}

func TestRebuildDeterministic(t *testing.T) {
	a := NewDefault()
	first := a.ElementData()
	a.SetSteeringAngle(10)
	a.SetSteeringAngle(0)
	second := a.ElementData()

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("element %d changed across rebuild: %+v vs %+v",
				i, first[i], second[i])
		}
	}
}
