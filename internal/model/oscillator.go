package model

import (
	"fmt"
	"math"

	"github.com/lmarzola/odelab/internal/ode"
)

// HarmonicOscillator is a damped, sinusoidally forced oscillator:
//
//	x'' + 2*zeta*omega_n*x' + omega_n^2*x = (f0/m)*sin(omega*t)
//
// State: [x, v] where v = dx/dt. The defaults reproduce the orbital
// mechanics textbook case of a lightly damped structure driven well
// below resonance (Curtis, example 1.18).
type HarmonicOscillator struct {
	F0     float64 // forcing amplitude
	M      float64 // mass
	OmegaN float64 // natural frequency
	Omega  float64 // forcing frequency
	Zeta   float64 // damping ratio
}

func NewHarmonicOscillator() *HarmonicOscillator {
	return &HarmonicOscillator{F0: 1.0, M: 1.0, OmegaN: 1.0, Omega: 0.4, Zeta: 0.03}
}

func (o *HarmonicOscillator) Name() string { return "oscillator" }
func (o *HarmonicOscillator) Dim() int     { return 2 }

func (o *HarmonicOscillator) Derive(t float64, y, dydt ode.State) error {
	dydt[0] = y[1]
	dydt[1] = (o.F0/o.M)*math.Sin(o.Omega*t) - 2*o.Zeta*o.OmegaN*y[1] - o.OmegaN*o.OmegaN*y[0]
	return nil
}

func (o *HarmonicOscillator) DefaultState() ode.State { return ode.State{0.0, 0.0} }

// AnalyticPosition evaluates the closed-form position for the motion
// started from x(0)=x0, x'(0)=v0. The closed form only holds for an
// underdamped oscillator, so zeta >= 1 is an error.
func (o *HarmonicOscillator) AnalyticPosition(t, x0, v0 float64) (float64, error) {
	if o.Zeta >= 1 {
		return 0, fmt.Errorf("oscillator: no underdamped closed form for zeta = %g", o.Zeta)
	}
	wn, w := o.OmegaN, o.Omega
	wd := wn * math.Sqrt(1-o.Zeta*o.Zeta)
	den := (wn*wn-w*w)*(wn*wn-w*w) + (2*w*wn*o.Zeta)*(2*w*wn*o.Zeta)
	f := o.F0 / o.M

	a := o.Zeta*(wn/wd)*x0 + v0/wd + ((w*w+(2*o.Zeta*o.Zeta-1)*wn*wn)/den)*(w/wd)*f
	b := x0 + ((2*w*wn*o.Zeta)/den)*f

	return math.Exp(-o.Zeta*wn*t)*(a*math.Sin(wd*t)+b*math.Cos(wd*t)) +
		(f/den)*((wn*wn-w*w)*math.Sin(w*t)-(2*w*wn*o.Zeta)*math.Cos(w*t)), nil
}

// Energy returns kinetic plus elastic energy for the state [x, v].
func (o *HarmonicOscillator) Energy(y ode.State) float64 {
	x, v := y[0], y[1]
	return 0.5*o.M*v*v + 0.5*o.M*o.OmegaN*o.OmegaN*x*x
}

func (o *HarmonicOscillator) GetParams() map[string]float64 {
	return map[string]float64{"f0": o.F0, "m": o.M, "omega_n": o.OmegaN, "omega": o.Omega, "zeta": o.Zeta}
}

func (o *HarmonicOscillator) SetParam(name string, v float64) error {
	switch name {
	case "f0":
		o.F0 = v
	case "m":
		o.M = v
	case "omega_n":
		o.OmegaN = v
	case "omega":
		o.Omega = v
	case "zeta":
		o.Zeta = v
	default:
		return fmt.Errorf("%w: %q", ErrParam, name)
	}
	return nil
}
