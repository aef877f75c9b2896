// Package ode implements a fixed-step explicit Runge-Kutta engine for
// first-order systems dy/dt = f(t, y) of arbitrary dimension.
//
// The classical methods of orders one through four are selected by an
// integer [Order]; the stage count equals the order:
//
//   - [Euler]: forward Euler, 1 stage
//   - [Heun]: Heun's two-stage second-order method
//   - [Kutta3]: Kutta's third-order method, 3 stages
//   - [RK4]: the classical fourth-order Runge-Kutta method
//
// [Integrate] drives a [System] across its time span on the fixed grid
// t0 + i*h and records every grid point into caller-owned buffers. The
// grid never clamps to t1: when t1-t0 is not a whole number of steps the
// last output time falls short of t1 by design, and no partial final step
// is taken. [Solve] is the allocating convenience wrapper.
//
// # Example
//
//	sys := ode.System{
//		RHS: model.NewDecay(),
//		Dim: 1,
//		T0:  0,
//		T1:  5,
//		Y0:  ode.State{1},
//	}
//	traj, err := ode.Solve(sys, ode.RK4, 0.01)
//
// # Thread safety
//
// The package holds no shared mutable state: independent integrations may
// run concurrently as long as each uses its own System, callback parameters
// and output buffers. A single [Stepper] owns scratch buffers and serves
// one integration at a time.
package ode
