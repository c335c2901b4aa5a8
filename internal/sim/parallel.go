package sim

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Factory builds a ready-to-run simulation for one seed.
type Factory func(seed int64) (*Simulation, error)

// Ensemble runs independent simulations side by side, one goroutine each.
// Every simulation is still stepped by a single goroutine.
type Ensemble struct {
	factory Factory
	cfg     RunConfig
	logger  *slog.Logger
}

func NewEnsemble(factory Factory, cfg RunConfig, logger *slog.Logger) *Ensemble {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ensemble{factory: factory, cfg: cfg, logger: logger}
}

// Run returns one result per seed, in seed order. The first failure cancels
// the remaining runs.
func (e *Ensemble) Run(ctx context.Context, seeds []int64) ([]*Result, error) {
	results := make([]*Result, len(seeds))
	g, ctx := errgroup.WithContext(ctx)

	for i, seed := range seeds {
		g.Go(func() error {
			s, err := e.factory(seed)
			if err != nil {
				return err
			}
			res, err := s.Run(ctx, e.cfg)
			if err != nil {
				return err
			}
			e.logger.Debug("ensemble member finished", "seed", seed, "ticks", res.TicksTaken)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Seeds returns n consecutive seeds starting at start.
func Seeds(start int64, n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = start + int64(i)
	}
	return seeds
}
