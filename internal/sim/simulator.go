package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// maxPrealloc caps the up-front capacity of per-run buffers; longer runs grow
// them by append.
const maxPrealloc = 4096

func prealloc(n int) int { return min(n, maxPrealloc) }

// Run advances the simulation cfg.Ticks times. Metrics and observers see the
// bodies after every tick. The context is checked between ticks; a tick in
// progress always completes. On cancellation the partial result is returned
// together with ctx.Err().
func (s *Simulation) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([]Frame, 0, prealloc(cfg.Ticks/cfg.SampleEvery+1)),
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, prealloc(cfg.Ticks))
	}

	result.Frames = append(result.Frames, Frame{Tick: s.tick, Bodies: s.Bodies()})

	s.logger.Debug("run started", "bodies", s.Len(), "ticks", cfg.Ticks, "pair_mode", s.pairs.Mode)
	start := time.Now()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		s.Step()
		result.TicksTaken++

		for _, m := range s.metrics {
			m.Observe(s.scratch, s.tick)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, obs := range s.observers {
			obs.OnTick(s.tick, s.scratch)
		}

		if cfg.ValidateState {
			if err := s.validate(); err != nil {
				s.logger.Warn("run stopped", "tick", s.tick, "err", err)
				result.Errors = append(result.Errors, err)
				result.Frames = append(result.Frames, Frame{Tick: s.tick, Bodies: s.Bodies()})
				break
			}
		}

		if (i+1)%cfg.SampleEvery == 0 {
			result.Frames = append(result.Frames, Frame{Tick: s.tick, Bodies: s.Bodies()})
		}
	}

	s.collect(result)
	s.logger.Debug("run finished", "ticks", result.TicksTaken, "elapsed", time.Since(start))
	return result, nil
}

// RunWithCallback steps until the callback returns false, the context is
// cancelled, or maxTicks ticks have run (maxTicks <= 0 means no limit).
// The callback sees the bodies before each tick.
func (s *Simulation) RunWithCallback(ctx context.Context, maxTicks int, callback func(tick uint64, bodies []*dynamo.Body) bool) error {
	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.scratch = s.arena.Live(s.scratch[:0])
		if !callback(s.tick, s.scratch) {
			return nil
		}
		s.Step()
	}
	return nil
}

func (s *Simulation) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulation) validate() error {
	for i, b := range s.scratch {
		if !b.IsValid() {
			return dynamo.SimError{
				Tick:    s.tick,
				Message: fmt.Sprintf("body %d non-finite: pos=%v vel=%v", i, b.Position, b.Velocity),
				Wrapped: dynamo.ErrDiverged,
			}
		}
	}
	return nil
}
