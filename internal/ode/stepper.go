package ode

import "fmt"

// Stepper advances a state by single fixed steps of one explicit
// Runge-Kutta method. It owns the stage scratch buffers, so a Stepper
// serves one integration at a time; concurrent integrations need one each.
type Stepper struct {
	tab tableau
	dim int
	k   []State // stage derivatives k_1..k_s
	yst State   // stage input buffer
}

// NewStepper builds a Stepper for the given method order and system
// dimension. All scratch memory is allocated here; Step itself does not
// allocate.
func NewStepper(order Order, dim int) (*Stepper, error) {
	tb, err := tableauFor(order)
	if err != nil {
		return nil, err
	}
	if dim < 1 {
		return nil, fmt.Errorf("%w: dimension %d", ErrInvalidSystem, dim)
	}
	st := &Stepper{tab: tb, dim: dim, k: make([]State, tb.stages()), yst: make(State, dim)}
	for i := range st.k {
		st.k[i] = make(State, dim)
	}
	return st, nil
}

// Order returns the method order the Stepper was built with.
func (st *Stepper) Order() Order { return st.tab.order }

// Step advances (t, y) by h and writes y(t+h) into dst. y and dst must
// both have the Stepper's dimension; dst may alias y.
//
// Stage i evaluates the callback at t + c_i*h on the input
// y + h * Σ_{j<i} a_ij k_j, and the result combines the stages as
// y + h * Σ b_i k_i. The callback never sees y itself, only the stage
// buffer.
func (st *Stepper) Step(rhs RHS, t float64, y State, h float64, dst State) error {
	s := st.tab.stages()
	for i := 0; i < s; i++ {
		copy(st.yst, y)
		for j := 0; j < i; j++ {
			aij := st.tab.a[i][j]
			if aij == 0 {
				continue
			}
			kj := st.k[j]
			for m := range st.yst {
				st.yst[m] += h * aij * kj[m]
			}
		}
		ti := t + st.tab.c[i]*h
		if err := rhs.Derive(ti, st.yst, st.k[i]); err != nil {
			return &CallbackError{Stage: i + 1, Time: ti, Err: err}
		}
	}
	for m := 0; m < st.dim; m++ {
		acc := 0.0
		for i := 0; i < s; i++ {
			acc += st.tab.b[i] * st.k[i][m]
		}
		dst[m] = y[m] + h*acc
	}
	return nil
}
