package seamcut

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOp is returned when a target dimension exceeds the
	// current one. Enlargement is not supported by the shortest path
	// seam finder and is rejected uniformly for all methods.
	ErrUnsupportedOp = errors.New("image enlargement is not supported")

	// ErrInvalidTarget is returned for non-positive target dimensions.
	ErrInvalidTarget = errors.New("target dimensions must be positive")
)

// DimensionError reports a seam or grid whose geometry does not match
// what an operation requires. It always signals a contract violation
// by the caller, never a recoverable condition.
type DimensionError struct {
	Op   string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: want %d, got %d", e.Op, e.Want, e.Got)
}
