package optim

import (
	"context"
	"fmt"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
)

// ParameterSweep steps one array parameter across a range and records beam
// metrics at each value.
type ParameterSweep struct {
	ParamName string
	Min       float64
	Max       float64
	NumSteps  int

	// Pattern window for the lobe metrics. Zero values fall back to a
	// full -90..90 degree sweep at half-degree resolution.
	FromDeg float64
	ToDeg   float64
	StepDeg float64
}

// SweepPoint holds the metrics measured at one parameter value.
type SweepPoint struct {
	Value   float64
	Metrics analysis.LobeMetrics
}

// RunSweep evaluates the sweep against a fresh array per step, so the base
// configuration is never mutated. Each requested value passes through the
// usual parameter clamps before the pattern is measured.
func RunSweep(ctx context.Context, base phased.Config, sweep *ParameterSweep) ([]SweepPoint, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("optim: sweep needs at least one step, got %d", sweep.NumSteps)
	}

	from, to, stepDeg := sweep.FromDeg, sweep.ToDeg, sweep.StepDeg
	if to <= from {
		from, to = -90, 90
	}
	if stepDeg <= 0 {
		stepDeg = 0.5
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepPoint, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		val := sweep.Min + float64(i)*paramStep
		a := phased.New(base)
		if err := a.SetParam(sweep.ParamName, val); err != nil {
			return nil, err
		}

		series := analysis.PatternSeries(a, from, to, stepDeg)
		results = append(results, SweepPoint{
			Value:   val,
			Metrics: analysis.Lobes(series),
		})
	}

	return results, nil
}
