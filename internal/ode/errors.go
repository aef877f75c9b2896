package ode

import (
	"errors"
	"fmt"
)

// Validation errors, all reported before the first output value is written.
var (
	// ErrInvalidOrder indicates an order outside 1..4.
	ErrInvalidOrder = errors.New("ode: order must be 1, 2, 3 or 4")

	// ErrInvalidStep indicates a zero or non-finite step size, or one whose
	// sign opposes the integration span t1-t0.
	ErrInvalidStep = errors.New("ode: invalid step size")

	// ErrInvalidSystem indicates a malformed System.
	ErrInvalidSystem = errors.New("ode: invalid system")

	// ErrBufferSize indicates output buffers smaller than the grid requires.
	ErrBufferSize = errors.New("ode: output buffer too small")
)

// CallbackError reports an RHS callback failure during stage evaluation.
// The step counts advances already completed, so output rows 0..Step are
// valid and rows past them keep their previous contents.
type CallbackError struct {
	Step  int     // step being advanced when the callback failed
	Stage int     // failing stage within the step, 1-based
	Time  float64 // stage evaluation time
	Err   error   // callback's error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("ode: rhs failed at step %d stage %d (t=%.6g): %v", e.Step, e.Stage, e.Time, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }
