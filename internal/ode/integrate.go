package ode

import (
	"errors"
	"fmt"
	"math"
)

// GridSize returns the number of output points N = floor((t1-t0)/h) + 1.
// h must be nonzero and share the sign of t1-t0. The grid is fixed: when
// t1-t0 is not an exact multiple of h the last grid time falls short of
// t1, and the engine never adds a partial final step to compensate.
func GridSize(t0, t1, h float64) int {
	return int(math.Floor((t1-t0)/h)) + 1
}

func validateStep(t0, t1, h float64) error {
	if h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: h=%g", ErrInvalidStep, h)
	}
	if (t1-t0)*h < 0 {
		return fmt.Errorf("%w: h=%g opposes span t1-t0=%g", ErrInvalidStep, h, t1-t0)
	}
	return nil
}

// Integrate runs the fixed-step driver: starting from (sys.T0, sys.Y0) it
// performs N-1 step advances of size h and records every grid point, with
// N = GridSize(sys.T0, sys.T1, h) and grid times sys.T0 + i*h.
//
// times must hold at least N values and states at least N*sys.Dim; states
// fills row-major, row i being the state at times[i], exactly the layout a
// caller sizes via GridSize. The engine writes only into these two buffers
// and does not retain them. When validation fails nothing is written; when
// the callback fails the error is a *CallbackError and rows past the
// failing step keep their previous contents.
func Integrate(sys System, order Order, h float64, times, states []float64) error {
	if _, err := tableauFor(order); err != nil {
		return err
	}
	if err := sys.Validate(); err != nil {
		return err
	}
	if err := validateStep(sys.T0, sys.T1, h); err != nil {
		return err
	}
	n := GridSize(sys.T0, sys.T1, h)
	if len(times) < n {
		return fmt.Errorf("%w: times holds %d of %d points", ErrBufferSize, len(times), n)
	}
	if len(states) < n*sys.Dim {
		return fmt.Errorf("%w: states holds %d of %d values", ErrBufferSize, len(states), n*sys.Dim)
	}

	st, err := NewStepper(order, sys.Dim)
	if err != nil {
		return err
	}

	times[0] = sys.T0
	copy(states[:sys.Dim], sys.Y0)
	for i := 1; i < n; i++ {
		prev := State(states[(i-1)*sys.Dim : i*sys.Dim])
		next := State(states[i*sys.Dim : (i+1)*sys.Dim])
		if err := st.Step(sys.RHS, sys.T0+float64(i-1)*h, prev, h, next); err != nil {
			var cb *CallbackError
			if errors.As(err, &cb) {
				cb.Step = i - 1
			}
			return err
		}
		times[i] = sys.T0 + float64(i)*h
	}
	return nil
}

// Solve is the allocating wrapper around Integrate for callers that do not
// manage their own buffers.
func Solve(sys System, order Order, h float64) (*Trajectory, error) {
	if _, err := tableauFor(order); err != nil {
		return nil, err
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	if err := validateStep(sys.T0, sys.T1, h); err != nil {
		return nil, err
	}
	n := GridSize(sys.T0, sys.T1, h)
	tr := &Trajectory{Dim: sys.Dim, Times: make([]float64, n), States: make([]float64, n*sys.Dim)}
	if err := Integrate(sys, order, h, tr.Times, tr.States); err != nil {
		return nil, err
	}
	return tr, nil
}
