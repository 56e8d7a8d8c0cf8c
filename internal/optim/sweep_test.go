package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
)

func TestRunSweepSteeringTracksPeak(t *testing.T) {
	sweep := &ParameterSweep{
		ParamName: "steeringAngle",
		Min:       0,
		Max:       30,
		NumSteps:  4,
		FromDeg:   -90,
		ToDeg:     90,
		StepDeg:   0.25,
	}

	points, err := RunSweep(context.Background(), phased.DefaultConfig(), sweep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 sweep points, got %d", len(points))
	}

	for i, p := range points {
		want := float64(i) * 10
		if math.Abs(p.Value-want) > 1e-12 {
			t.Errorf("point %d: expected value %v, got %v", i, want, p.Value)
		}
		if math.Abs(p.Metrics.PeakAngleDeg-p.Value) > 0.5 {
			t.Errorf("steering %v: expected peak near steering, got %v", p.Value, p.Metrics.PeakAngleDeg)
		}
		if p.Metrics.PeakValue < 0.99 {
			t.Errorf("steering %v: expected near-unity peak, got %v", p.Value, p.Metrics.PeakValue)
		}
	}
}

func TestRunSweepApertureNarrowsBeam(t *testing.T) {
	sweep := &ParameterSweep{
		ParamName: "numElements",
		Min:       4,
		Max:       16,
		NumSteps:  4,
		StepDeg:   0.25,
	}

	points, err := RunSweep(context.Background(), phased.DefaultConfig(), sweep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := math.Inf(1)
	for _, p := range points {
		bw := p.Metrics.BeamwidthDeg
		if bw <= 0 {
			t.Fatalf("n=%v: expected a measurable beamwidth, got %v", p.Value, bw)
		}
		if bw >= prev {
			t.Errorf("n=%v: expected beamwidth below %v, got %v", p.Value, prev, bw)
		}
		prev = bw
	}
}

func TestRunSweepSingleStep(t *testing.T) {
	sweep := &ParameterSweep{ParamName: "pitch", Min: 0.004, Max: 0.008, NumSteps: 1}

	points, err := RunSweep(context.Background(), phased.DefaultConfig(), sweep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 sweep point, got %d", len(points))
	}
	if points[0].Value != 0.004 {
		t.Errorf("expected single point at min, got %v", points[0].Value)
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	sweep := &ParameterSweep{ParamName: "bogus", Min: 0, Max: 1, NumSteps: 2}

	_, err := RunSweep(context.Background(), phased.DefaultConfig(), sweep)
	if !errors.Is(err, phased.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestRunSweepNoSteps(t *testing.T) {
	sweep := &ParameterSweep{ParamName: "pitch", Min: 0.004, Max: 0.008}

	_, err := RunSweep(context.Background(), phased.DefaultConfig(), sweep)
	if err == nil {
		t.Error("expected error for zero-step sweep")
	}
}
