package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
)

// Objective scores a candidate array. Search keeps the highest score.
type Objective func(a *phased.Array) float64

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

func (g *GridSearch) Search(
	ctx context.Context,
	base phased.Config,
	score Objective,
) (map[string]float64, float64, error) {

	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters with %d ranges", len(g.paramNames), len(g.ranges))
	}

	// Reject unknown parameter names before descending into the grid, so a
	// typo fails loudly instead of silently scoring nothing.
	probe := phased.New(base)
	for _, name := range g.paramNames {
		if err := probe.SetParam(name, probe.Params()[name]); err != nil {
			return nil, 0, err
		}
	}

	best := math.Inf(-1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, base, 0, make(map[string]float64), score, &best, &bestParams)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("optim: no parameter combinations evaluated")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	base phased.Config,
	depth int,
	current map[string]float64,
	score Objective,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		cand := phased.New(base)
		for name, val := range current {
			if err := cand.SetParam(name, val); err != nil {
				return
			}
		}

		val := score(cand)
		if math.IsNaN(val) || val <= *best {
			return
		}
		*best = val

		picked := make(map[string]float64, len(current))
		for k, v := range current {
			picked[k] = v
		}
		*bestParams = picked
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = val

		g.searchRecursive(ctx, base, depth+1, next, score, best, bestParams)
	}
}
