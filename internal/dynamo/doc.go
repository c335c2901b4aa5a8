// Package dynamo provides the core data model for the particle simulation.
//
// The package defines the types every other layer works on:
//
//   - [Vec2]: float32 2D vector
//   - [Body]: circular particle with position, velocity and radius
//   - [Bounds]: the fixed rectangle bodies move in
//   - [Arena]: handle-indexed body storage owned by a simulation
//
// # Example
//
//	b, err := dynamo.NewBody(dynamo.Vec2{X: 400, Y: 300}, dynamo.Vec2{X: 1, Y: 1}, 20)
//	if err != nil {
//	    return err
//	}
//	var arena dynamo.Arena
//	h := arena.Add(b)
//
// # Thread Safety
//
// None of the types here are safe for concurrent mutation. A simulation owns its
// Arena and is stepped from a single goroutine.
package dynamo
