package dynamo

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec2 is a float32 2D vector used for both positions and velocities.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float32         { return math32.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) LenSq() float32       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) String() string       { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }
func (v Vec2) Equal(o Vec2) bool    { return v.X == o.X && v.Y == o.Y }

// IsFinite reports whether neither component is NaN or Inf.
func (v Vec2) IsFinite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

// Body is a circular particle. Velocity is a per-tick displacement.
// Radius is fixed once the body has been created.
type Body struct {
	Position Vec2
	Velocity Vec2
	Radius   float32
}

// NewBody validates the radius and returns the body by value.
func NewBody(position, velocity Vec2, radius float32) (Body, error) {
	// !(r > 0) also rejects NaN
	if !(radius > 0) {
		return Body{}, fmt.Errorf("%w, got %v", ErrInvalidRadius, radius)
	}
	return Body{Position: position, Velocity: velocity, Radius: radius}, nil
}

// IsValid reports whether the body state is finite.
func (b Body) IsValid() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite()
}

// Speed is the velocity magnitude.
func (b Body) Speed() float32 { return b.Velocity.Len() }

// Bounds is the world rectangle [0, Width] x [0, Height].
type Bounds struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

func (b Bounds) Validate() error {
	if !(b.Width > 0) || !(b.Height > 0) || math32.IsInf(b.Width, 0) || math32.IsInf(b.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidBounds, b.Width, b.Height)
	}
	return nil
}

// Contains reports whether p lies inside the closed rectangle.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}
