// Package optim searches parameter grids for the settings that score best
// on a run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/ballpit/internal/sim"
)

var ErrEmptyGrid = errors.New("optim: empty parameter grid")

// Builder creates a simulation for one point of the grid.
type Builder func(params map[string]float64) (*sim.Simulation, error)

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
	Ticks  int
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Maximize picks the highest metric value instead of the lowest.
	Maximize bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every combination of parameters and returns the best trial
// together with all trials in grid order. Non-finite metric values never win.
func (g *GridSearch) Search(ctx context.Context, build Builder, cfg sim.RunConfig, metricName string) (Trial, []Trial, error) {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, ErrEmptyGrid
	}
	for i, r := range g.ranges {
		if len(r) == 0 {
			return Trial{}, nil, fmt.Errorf("%w: no values for %s", ErrEmptyGrid, g.paramNames[i])
		}
	}

	var trials []Trial
	if err := g.searchRecursive(ctx, 0, map[string]float64{}, build, cfg, metricName, &trials); err != nil {
		return Trial{}, trials, err
	}

	bestIdx := -1
	for i, t := range trials {
		if math.IsNaN(t.Value) || math.IsInf(t.Value, 0) {
			continue
		}
		if bestIdx < 0 || g.better(t.Value, trials[bestIdx].Value) {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return Trial{}, trials, fmt.Errorf("optim: no finite %s in %d trials", metricName, len(trials))
	}
	return trials[bestIdx], trials, nil
}

func (g *GridSearch) better(a, b float64) bool {
	if g.Maximize {
		return a > b
	}
	return a < b
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Builder,
	cfg sim.RunConfig,
	metricName string,
	trials *[]Trial,
) error {
	if depth == len(g.paramNames) {
		s, err := build(current)
		if err != nil {
			return fmt.Errorf("build %v: %w", current, err)
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("optim: unknown metric %q", metricName)
		}
		*trials = append(*trials, Trial{Params: current, Value: val, Ticks: result.TicksTaken})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, build, cfg, metricName, trials); err != nil {
			return err
		}
	}
	return nil
}
