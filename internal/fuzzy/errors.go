package fuzzy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape indicates trapezoid boundaries that are not ascending.
	ErrInvalidShape = errors.New("fuzzy: membership boundaries must satisfy x1 <= x2 <= x3 <= x4")

	// ErrEmptyInput indicates an n-ary combinator called without operands.
	ErrEmptyInput = errors.New("fuzzy: combinator needs at least one degree")

	// ErrUnorderedPeaks indicates a peak chain that is not ascending.
	ErrUnorderedPeaks = errors.New("fuzzy: peaks must be ascending with x2 <= x3")
)

// ShapeError reports the boundaries rejected by NewMembership.
type ShapeError struct {
	X1, X2, X3, X4 float64
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s (got %g, %g, %g, %g)", ErrInvalidShape.Error(), e.X1, e.X2, e.X3, e.X4)
}

func (e *ShapeError) Unwrap() error {
	return ErrInvalidShape
}
