package model

import (
	"fmt"

	"github.com/lmarzola/odelab/internal/ode"
)

// VanDerPol is the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	mu float64 // nonlinearity parameter
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		mu: 1.0, // classic value for the limit cycle
	}
}

func (v *VanDerPol) Name() string { return "vanderpol" }
func (v *VanDerPol) Dim() int     { return 2 }

func (v *VanDerPol) Derive(t float64, y, dydt ode.State) error {
	x, vel := y[0], y[1]
	dydt[0] = vel
	dydt[1] = v.mu*(1-x*x)*vel - x
	return nil
}

func (v *VanDerPol) DefaultState() ode.State { return ode.State{2.0, 0.0} }

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return fmt.Errorf("%w: %q", ErrParam, name)
	}
	v.mu = value
	return nil
}
