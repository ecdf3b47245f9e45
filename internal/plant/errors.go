package plant

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a non-positive timestep or duration.
	ErrInvalidConfig = errors.New("plant: invalid simulation config")

	// ErrDimensionMismatch indicates an initial state that does not match the system.
	ErrDimensionMismatch = errors.New("plant: dimension mismatch between state and system")
)

// SimError reports the step at which a run went numerically bad.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
