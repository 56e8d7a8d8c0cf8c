package optim

import (
	"context"
	"fmt"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
)

// TargetIntensity scores an array by the time-averaged intensity it delivers
// at a world point.
func TargetIntensity(target geom.Vec2) Objective {
	return func(a *phased.Array) float64 {
		re, im := a.FieldPhasor(target.X, target.Y)
		return re*re + im*im
	}
}

// FocusResult is the winning combination from a focus search.
type FocusResult struct {
	SteeringAngle float64

	// FocalDistance is zero when the far-field candidate won, matching
	// the serialized form of an unfocused array.
	FocalDistance float64

	Intensity float64
}

// FocusSearch grid-searches steering angle and focal distance for the
// combination that maximizes intensity at the target point. The steering
// axis spans the full steerable range; the focal axis brackets the distance
// from the array to the target, with an extra far-field candidate. steps
// sets the resolution of both axes.
func FocusSearch(ctx context.Context, base phased.Config, target geom.Vec2, steps int) (FocusResult, error) {
	if steps < 2 {
		return FocusResult{}, fmt.Errorf("optim: focus search needs at least 2 steps per axis, got %d", steps)
	}

	cfg := phased.New(base).Config()
	reach := cfg.Position.DistanceTo(target)

	steering := linspace(phased.MinSteeringDeg, phased.MaxSteeringDeg, steps)
	focals := append(linspace(0.5*reach, 1.5*reach, steps), 0)

	gs := NewGridSearch(
		[]string{"steeringAngle", "focalDistance"},
		[][]float64{steering, focals},
	)
	bestParams, bestVal, err := gs.Search(ctx, cfg, TargetIntensity(target))
	if err != nil {
		return FocusResult{}, err
	}

	return FocusResult{
		SteeringAngle: bestParams["steeringAngle"],
		FocalDistance: bestParams["focalDistance"],
		Intensity:     bestVal,
	}, nil
}

func linspace(from, to float64, n int) []float64 {
	vals := make([]float64, n)
	if n == 1 {
		vals[0] = from
		return vals
	}
	step := (to - from) / float64(n-1)
	for i := range vals {
		vals[i] = from + float64(i)*step
	}
	return vals
}
