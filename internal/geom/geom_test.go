package geom

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 3, Y: -1}

	if got := a.Add(b); got.X != 4 || got.Y != 1 {
		t.Errorf("expected (4,1), got (%v,%v)", got.X, got.Y)
	}
	if got := a.Sub(b); got.X != -2 || got.Y != 3 {
		t.Errorf("expected (-2,3), got (%v,%v)", got.X, got.Y)
	}
	if got := a.Scale(2); got.X != 2 || got.Y != 4 {
		t.Errorf("expected (2,4), got (%v,%v)", got.X, got.Y)
	}
	if got := a.Dot(b); got != 1 {
		t.Errorf("expected dot 1, got %v", got)
	}
	if got := (Vec2{X: 3, Y: 4}).Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("expected length 5, got %v", got)
	}
	if got := a.DistanceTo(Vec2{X: 4, Y: 6}); math.Abs(got-5) > 1e-12 {
		t.Errorf("expected distance 5, got %v", got)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		deg  float64
		x, y float64
	}{
		{0, 0, 1},
		{90, 1, 0},
		{180, 0, -1},
		{-90, -1, 0},
		{30, 0.5, math.Sqrt(3) / 2},
	}

	for _, tt := range tests {
		got := Heading(tt.deg)
		if math.Abs(got.X-tt.x) > 1e-12 || math.Abs(got.Y-tt.y) > 1e-12 {
			t.Errorf("Heading(%v): expected (%v,%v), got (%v,%v)",
				tt.deg, tt.x, tt.y, got.X, got.Y)
		}
	}
}

func TestRotateBearing(t *testing.T) {
	// Rotating the local broadside (+Y) must land on Heading(deg).
	for _, deg := range []float64{0, 30, 90, 135, 270} {
		got := RotateBearing(Vec2{X: 0, Y: 1}, deg)
		want := Heading(deg)
		if math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 {
			t.Errorf("RotateBearing(+Y, %v): expected (%v,%v), got (%v,%v)",
				deg, want.X, want.Y, got.X, got.Y)
		}
	}

	// At bearing 90 the local +X axis points toward -Y.
	got := RotateBearing(Vec2{X: 1, Y: 0}, 90)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y+1) > 1e-12 {
		t.Errorf("expected (0,-1), got (%v,%v)", got.X, got.Y)
	}

	// Rotation preserves length.
	v := Vec2{X: 0.3, Y: -0.7}
	if r := RotateBearing(v, 47); math.Abs(r.Length()-v.Length()) > 1e-12 {
		t.Errorf("expected length %v, got %v", v.Length(), r.Length())
	}
}

func TestWrapDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{370, 10},
		{-10, 350},
		{720, 0},
		{359.5, 359.5},
		{-725, 355},
	}

	for _, tt := range tests {
		if got := WrapDeg(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapDeg(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 2); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := Clamp(-5, 0, 2); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Clamp(1.5, 0, 2); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
}
