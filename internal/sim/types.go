package sim

import (
	"fmt"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Metric accumulates a scalar over a run. Observe is called once after every tick.
type Metric interface {
	Name() string
	Observe(bodies []*dynamo.Body, tick uint64)
	Value() float64
	Reset()
}

// Observer is notified after every tick. It must not keep the body pointers.
type Observer interface {
	OnTick(tick uint64, bodies []*dynamo.Body)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(tick uint64, bodies []*dynamo.Body)

func (f ObserverFunc) OnTick(tick uint64, bodies []*dynamo.Body) { f(tick, bodies) }

type RunConfig struct {
	Ticks         int
	SampleEvery   int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Ticks:         600,
		SampleEvery:   1,
		ValidateState: true,
	}
}

func (c RunConfig) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	return nil
}

// Frame is a copy of every live body at a given tick.
type Frame struct {
	Tick   uint64
	Bodies []dynamo.Body
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	Series     map[string][]float64
	TicksTaken int
	Errors     []error
}

// Final returns the last recorded frame, or an empty frame when nothing was recorded.
func (r *Result) Final() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}
