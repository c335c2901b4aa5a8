package physics

import "github.com/san-kum/ballpit/internal/dynamo"

// WallHits reports which radius-offset boundary lines a body is on or past.
type WallHits struct {
	MaxY, MinY, MinX, MaxX bool
}

func (w WallHits) Any() bool { return w.MaxY || w.MinY || w.MinX || w.MaxX }

// Walls evaluates the four boundary predicates for b against the usable
// region [r, width-r] x [r, height-r]. Touching a line counts as a hit.
func Walls(b *dynamo.Body, bounds dynamo.Bounds) WallHits {
	p, r := b.Position, b.Radius
	return WallHits{
		MaxY: p.Y >= bounds.Height-r,
		MinY: p.Y <= r,
		MinX: p.X <= r,
		MaxX: p.X >= bounds.Width-r,
	}
}

// WallCollider bounces bodies off the world edges.
type WallCollider struct{}

// Resolve inverts a velocity component for every boundary line the body is
// on or past. Each check is applied independently, so a corner flips both
// axes in one call. Position is left untouched. Call exactly once per body per tick.
func (WallCollider) Resolve(b *dynamo.Body, bounds dynamo.Bounds) {
	h := Walls(b, bounds)
	if h.MaxY {
		b.Velocity.Y *= -1
	}
	if h.MinY {
		b.Velocity.Y *= -1
	}
	if h.MinX {
		b.Velocity.X *= -1
	}
	if h.MaxX {
		b.Velocity.X *= -1
	}
}

// ResolveAll applies Resolve to every body.
func (w WallCollider) ResolveAll(bodies []*dynamo.Body, bounds dynamo.Bounds) {
	for _, b := range bodies {
		w.Resolve(b, bounds)
	}
}
