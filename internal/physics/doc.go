// Package physics implements collision handling for circular bodies.
//
//   - [WallCollider]: reflects velocity components at the world edges
//   - [PairCollider]: detects overlapping bodies and exchanges their velocities
//   - [Detector]: pluggable pair detection, [BruteForce] by default
//
// Neither collider moves bodies; position updates belong to the integrator.
//
// # Known Limitations
//
// Wall handling only flips velocity signs and never clamps position, so a body
// moving faster than its radius per tick can end up outside the world.
//
// The pair response is a velocity exchange amplified by [ExchangeGain], not an
// elastic collision. Repeated contacts grow velocities without bound and may
// eventually overflow to Inf or NaN; stepping carries on arithmetically.
package physics
