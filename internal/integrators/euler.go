package integrators

import "github.com/san-kum/ballpit/internal/dynamo"

// Integrator moves a body along its velocity for one tick.
type Integrator interface {
	Advance(b *dynamo.Body)
}

// Euler is explicit position integration: position += velocity * Scale.
// Velocity is already a per-tick displacement, so Scale is 1 for a normal tick.
type Euler struct {
	Scale float32
}

func NewEuler() *Euler {
	return &Euler{Scale: 1}
}

func (e *Euler) Advance(b *dynamo.Body) {
	if e.Scale == 1 {
		b.Position = b.Position.Add(b.Velocity)
		return
	}
	b.Position = b.Position.Add(b.Velocity.Scale(e.Scale))
}
