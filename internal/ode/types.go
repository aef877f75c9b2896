package ode

import (
	"fmt"
	"math"
)

// State is a vector of scalar state variables.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// RHS is the right-hand side of a first-order system dy/dt = f(t, y).
//
// Derive writes the derivative at time t into dydt; both slices carry the
// system dimension. Implementations must fill every element of dydt, must
// not retain y or dydt past the call, and should be pure functions of
// their inputs: the engine invokes Derive once per stage, several times
// per step. A non-nil error aborts the integration and surfaces as a
// *CallbackError.
type RHS interface {
	Derive(t float64, y, dydt State) error
}

// RHSFunc adapts a plain function to the RHS interface. Closures capturing
// model parameters are the usual callers.
type RHSFunc func(t float64, y, dydt State) error

func (f RHSFunc) Derive(t float64, y, dydt State) error { return f(t, y, dydt) }

// System describes one integration problem: the derivative callback, the
// number of state variables, the time span and the initial state. The
// engine treats a System as read-only.
type System struct {
	RHS RHS     // derivative callback
	Dim int     // number of state variables
	T0  float64 // start time
	T1  float64 // end time
	Y0  State   // state at T0, length Dim
}

// Validate reports ErrInvalidSystem when the callback is missing, the
// dimension is not positive, or Y0 does not match the dimension.
func (s System) Validate() error {
	if s.RHS == nil {
		return fmt.Errorf("%w: nil RHS callback", ErrInvalidSystem)
	}
	if s.Dim < 1 {
		return fmt.Errorf("%w: dimension %d", ErrInvalidSystem, s.Dim)
	}
	if len(s.Y0) != s.Dim {
		return fmt.Errorf("%w: y0 holds %d values, want %d", ErrInvalidSystem, len(s.Y0), s.Dim)
	}
	return nil
}

// Trajectory is one integration result: Times holds the N grid times and
// States the N matching state rows, row-major, so row i occupies
// States[i*Dim : (i+1)*Dim]. The storage is caller-owned; the engine only
// fills it in.
type Trajectory struct {
	Dim    int
	Times  []float64
	States []float64
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Y returns the state row at index i. The returned slice aliases the
// trajectory storage.
func (tr *Trajectory) Y(i int) State {
	return State(tr.States[i*tr.Dim : (i+1)*tr.Dim])
}

// Last returns the final grid time and state row.
func (tr *Trajectory) Last() (float64, State) {
	n := tr.Len()
	return tr.Times[n-1], tr.Y(n - 1)
}
