// Package model collects the dynamical systems bundled with the lab.
// Every model implements the engine's derivative callback and carries
// canonical parameters plus a default initial state.
package model

import (
	"errors"
	"fmt"

	"github.com/lmarzola/odelab/internal/ode"
)

var (
	ErrUnknown = errors.New("model: unknown model")
	ErrParam   = errors.New("model: unknown parameter")
)

// Model is a named dynamical system ready to hand to the engine.
type Model interface {
	ode.RHS
	Name() string
	Dim() int
	DefaultState() ode.State
}

// Configurable is implemented by models whose parameters can be tuned
// from run configuration.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Configure applies params to m. Unknown parameter names surface
// ErrParam so typos in run files fail loudly.
func Configure(m Model, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	c, ok := m.(Configurable)
	if !ok {
		return fmt.Errorf("%w: model %s takes no parameters", ErrParam, m.Name())
	}
	for name, v := range params {
		if err := c.SetParam(name, v); err != nil {
			return err
		}
	}
	return nil
}
