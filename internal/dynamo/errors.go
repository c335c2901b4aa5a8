package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for body construction and simulation.
var (
	// ErrInvalidRadius indicates a body radius that is not strictly positive.
	ErrInvalidRadius = errors.New("dynamo: radius must be positive")

	// ErrInvalidBounds indicates a world rectangle with a non-positive or non-finite side.
	ErrInvalidBounds = errors.New("dynamo: bounds must be positive and finite")

	// ErrStaleHandle indicates a handle whose body was removed or never existed.
	ErrStaleHandle = errors.New("dynamo: stale body handle")

	// ErrDiverged indicates a body position or velocity became NaN or Inf.
	ErrDiverged = errors.New("dynamo: simulation diverged (non-finite body state)")
)

// SimError records a problem observed at a given tick.
type SimError struct {
	Tick    uint64
	Message string
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
