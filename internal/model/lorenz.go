package model

import (
	"fmt"

	"github.com/lmarzola/odelab/internal/ode"
)

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

func (l *Lorenz) Name() string { return "lorenz" }
func (l *Lorenz) Dim() int     { return 3 }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(t float64, y, dydt ode.State) error {
	dydt[0] = l.sigma * (y[1] - y[0])
	dydt[1] = y[0]*(l.rho-y[2]) - y[1]
	dydt[2] = y[0]*y[1] - l.beta*y[2]
	return nil
}

func (l *Lorenz) DefaultState() ode.State { return ode.State{1.0, 1.0, 1.0} }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

func (l *Lorenz) SetParam(name string, v float64) error {
	switch name {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	default:
		return fmt.Errorf("%w: %q", ErrParam, name)
	}
	return nil
}
