package stage

import (
	"errors"
	"fmt"
)

// Domain errors for the pipeline.
var (
	// ErrConfiguration indicates a configuration the pipeline cannot run with:
	// an unordered code table, a stage index out of range, an empty sweep.
	ErrConfiguration = errors.New("pipelinedadc: invalid configuration")

	// ErrInvalidState indicates that a stage selected a code outside
	// {-1, 0, +1}. The code table is corrupt and the conversion is aborted.
	ErrInvalidState = errors.New("pipelinedadc: invalid stage code")
)

// Error wraps an error with the stage it occurred in.
type Error struct {
	Stage   int
	Input   float64
	Code    Code
	Wrapped error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stage %d (input %g, code %d): %v", e.Stage, e.Input, e.Code, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
