// Package scenario turns a layout description into initial bodies and
// ready-to-run simulations. All randomness goes through a seedable [Source],
// so the same seed always yields the same bodies.
package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/sim"
)

var (
	ErrUnknownLayout = errors.New("scenario: unknown layout kind")
	ErrTooCrowded    = errors.New("scenario: bodies do not fit in the world")
)

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

// NewSource returns the default deterministic source for a seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Build creates the bodies for a layout using a source seeded with seed.
func Build(l config.LayoutConfig, bounds dynamo.Bounds, seed int64) ([]dynamo.Body, error) {
	return BuildFrom(l, bounds, NewSource(seed), seed)
}

// BuildFrom creates the bodies for a layout drawing from src. noiseSeed seeds
// the perlin field used by the "field" kind.
func BuildFrom(l config.LayoutConfig, bounds dynamo.Bounds, src Source, noiseSeed int64) ([]dynamo.Body, error) {
	switch l.Kind {
	case "explicit":
		return explicit(l.Bodies)
	case "", "random":
		return random(l, bounds, src)
	case "grid":
		return grid(l, bounds, src)
	case "field":
		return field(l, bounds, src, noiseSeed)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, l.Kind)
}

// New builds the bodies described by cfg and returns a simulation holding
// them, with the default metrics attached.
func New(cfg *config.Config, logger *slog.Logger) (*sim.Simulation, error) {
	bodies, err := Build(cfg.Layout, cfg.World, cfg.Seed)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.SimOptions()
	if err != nil {
		return nil, err
	}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}
	s, err := sim.New(cfg.World, opts...)
	if err != nil {
		return nil, err
	}
	for _, b := range bodies {
		s.Add(b)
	}
	for _, m := range metrics.Defaults(cfg.World) {
		s.AddMetric(m)
	}
	return s, nil
}

// RandomBody places one body uniformly inside the usable region with velocity
// components uniform in [-maxSpeed, maxSpeed].
func RandomBody(src Source, bounds dynamo.Bounds, radius, maxSpeed float32) (dynamo.Body, error) {
	if bounds.Width < 2*radius || bounds.Height < 2*radius {
		return dynamo.Body{}, fmt.Errorf("%w: radius %v in %vx%v", ErrTooCrowded, radius, bounds.Width, bounds.Height)
	}
	pos := dynamo.Vec2{
		X: radius + src.Float32()*(bounds.Width-2*radius),
		Y: radius + src.Float32()*(bounds.Height-2*radius),
	}
	return dynamo.NewBody(pos, randomVelocity(src, maxSpeed), radius)
}

func randomVelocity(src Source, maxSpeed float32) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (src.Float32()*2 - 1) * maxSpeed,
		Y: (src.Float32()*2 - 1) * maxSpeed,
	}
}

func explicit(list []config.BodyConfig) ([]dynamo.Body, error) {
	bodies := make([]dynamo.Body, 0, len(list))
	for i, bc := range list {
		b, err := dynamo.NewBody(dynamo.Vec2{X: bc.X, Y: bc.Y}, dynamo.Vec2{X: bc.VX, Y: bc.VY}, bc.Radius)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

func random(l config.LayoutConfig, bounds dynamo.Bounds, src Source) ([]dynamo.Body, error) {
	bodies := make([]dynamo.Body, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		b, err := RandomBody(src, bounds, l.Radius, l.MaxSpeed)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// grid lays bodies out row-major on a lattice centred in the world.
func grid(l config.LayoutConfig, bounds dynamo.Bounds, src Source) ([]dynamo.Body, error) {
	if !(l.Radius > 0) {
		return nil, fmt.Errorf("%w, got %v", dynamo.ErrInvalidRadius, l.Radius)
	}
	if l.Count == 0 {
		return []dynamo.Body{}, nil
	}
	spacing := 2*l.Radius + l.Gap
	usableW, usableH := bounds.Width-2*l.Radius, bounds.Height-2*l.Radius
	if usableW < 0 || usableH < 0 || spacing <= 0 {
		return nil, fmt.Errorf("%w: radius %v, gap %v", ErrTooCrowded, l.Radius, l.Gap)
	}
	cols := int(usableW/spacing) + 1
	rows := int(usableH/spacing) + 1
	if cols*rows < l.Count {
		return nil, fmt.Errorf("%w: %d bodies, room for %d", ErrTooCrowded, l.Count, cols*rows)
	}

	used := (l.Count + cols - 1) / cols
	if cols > l.Count {
		cols = l.Count
	}
	offX := (bounds.Width - float32(cols-1)*spacing) / 2
	offY := (bounds.Height - float32(used-1)*spacing) / 2

	bodies := make([]dynamo.Body, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		r, c := i/cols, i%cols
		pos := dynamo.Vec2{X: offX + float32(c)*spacing, Y: offY + float32(r)*spacing}
		b, err := dynamo.NewBody(pos, randomVelocity(src, l.MaxSpeed), l.Radius)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// field places bodies at random and points each one along a perlin noise
// heading sampled at its position, at full MaxSpeed.
func field(l config.LayoutConfig, bounds dynamo.Bounds, src Source, seed int64) ([]dynamo.Body, error) {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	scale := l.NoiseScale
	if scale <= 0 {
		scale = config.DefaultNoise
	}

	bodies, err := random(l, bounds, src)
	if err != nil {
		return nil, err
	}
	for i := range bodies {
		p := bodies[i].Position
		n := noise.Noise2D(float64(p.X)*scale, float64(p.Y)*scale)
		sin, cos := math32.Sincos(float32(n) * 2 * math32.Pi)
		bodies[i].Velocity = dynamo.Vec2{X: cos * l.MaxSpeed, Y: sin * l.MaxSpeed}
	}
	return bodies, nil
}
