package sim

import (
	"log/slog"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/integrators"
	"github.com/san-kum/ballpit/internal/physics"
)

// Simulation owns a set of bodies in a fixed world and advances them tick by tick.
// It is not safe for concurrent use; bodies may only be added, removed or
// edited between calls to Step.
type Simulation struct {
	bounds     dynamo.Bounds
	arena      dynamo.Arena
	walls      physics.WallCollider
	pairs      *physics.PairCollider
	integrator integrators.Integrator
	tick       uint64
	scratch    []*dynamo.Body
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
}

type Option func(*Simulation)

func WithPairMode(m physics.Mode) Option {
	return func(s *Simulation) { s.pairs.Mode = m }
}

// WithDetector swaps the pair detector, e.g. for a broad-phase implementation.
func WithDetector(d physics.Detector) Option {
	return func(s *Simulation) { s.pairs.Detector = d }
}

func WithIntegrator(i integrators.Integrator) Option {
	return func(s *Simulation) { s.integrator = i }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

func New(bounds dynamo.Bounds, opts ...Option) (*Simulation, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		bounds:     bounds,
		pairs:      physics.NewPairCollider(physics.ModeOrdered),
		integrator: integrators.NewEuler(),
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Bounds() dynamo.Bounds    { return s.bounds }
func (s *Simulation) Len() int                 { return s.arena.Len() }
func (s *Simulation) Tick() uint64             { return s.tick }
func (s *Simulation) PairMode() physics.Mode   { return s.pairs.Mode }
func (s *Simulation) Handles() []dynamo.Handle { return s.arena.Handles() }

// Add inserts an already validated body.
func (s *Simulation) Add(b dynamo.Body) dynamo.Handle {
	return s.arena.Add(b)
}

// Spawn validates and inserts a new body.
func (s *Simulation) Spawn(position, velocity dynamo.Vec2, radius float32) (dynamo.Handle, error) {
	b, err := dynamo.NewBody(position, velocity, radius)
	if err != nil {
		return dynamo.Handle{}, err
	}
	return s.arena.Add(b), nil
}

func (s *Simulation) Remove(h dynamo.Handle) error {
	return s.arena.Remove(h)
}

// Body returns the live body behind h for in-place edits between ticks.
func (s *Simulation) Body(h dynamo.Handle) (*dynamo.Body, bool) {
	return s.arena.Get(h)
}

// Bodies returns a copy of every live body in iteration order.
func (s *Simulation) Bodies() []dynamo.Body {
	s.scratch = s.arena.Live(s.scratch[:0])
	out := make([]dynamo.Body, len(s.scratch))
	for i, b := range s.scratch {
		out[i] = *b
	}
	return out
}

// Reset removes all bodies and rewinds the tick counter.
func (s *Simulation) Reset() {
	s.arena.Reset()
	s.tick = 0
}

// Step runs one tick: wall reflection for every body, then pair exchange over
// the reflected velocities, then position integration.
func (s *Simulation) Step() {
	s.scratch = s.arena.Live(s.scratch[:0])
	step(s.scratch, s.bounds, s.walls, s.pairs, s.integrator)
	s.tick++
}

// Step runs one tick in place over a plain slice with the default ordered
// pair handling and unit Euler integration.
func Step(bodies []dynamo.Body, bounds dynamo.Bounds) {
	ptrs := make([]*dynamo.Body, len(bodies))
	for i := range bodies {
		ptrs[i] = &bodies[i]
	}
	step(ptrs, bounds, physics.WallCollider{}, physics.NewPairCollider(physics.ModeOrdered), integrators.NewEuler())
}

func step(bodies []*dynamo.Body, bounds dynamo.Bounds, walls physics.WallCollider, pairs *physics.PairCollider, integ integrators.Integrator) {
	walls.ResolveAll(bodies, bounds)
	pairs.ResolvePairs(bodies)
	for _, b := range bodies {
		integ.Advance(b)
	}
}
