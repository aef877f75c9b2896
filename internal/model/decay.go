package model

import (
	"fmt"
	"math"

	"github.com/lmarzola/odelab/internal/ode"
)

// Decay is exponential decay dy/dt = -k*y, the standard smoke test for
// any integrator.
type Decay struct {
	K float64
}

func NewDecay() *Decay { return &Decay{K: 1.0} }

func (d *Decay) Name() string { return "decay" }
func (d *Decay) Dim() int     { return 1 }

func (d *Decay) Derive(t float64, y, dydt ode.State) error {
	dydt[0] = -d.K * y[0]
	return nil
}

func (d *Decay) DefaultState() ode.State { return ode.State{1.0} }

// Analytic returns the exact solution y0*exp(-k*t).
func (d *Decay) Analytic(t, y0 float64) float64 { return y0 * math.Exp(-d.K*t) }

func (d *Decay) GetParams() map[string]float64 { return map[string]float64{"k": d.K} }

func (d *Decay) SetParam(name string, v float64) error {
	if name != "k" {
		return fmt.Errorf("%w: %q", ErrParam, name)
	}
	d.K = v
	return nil
}
