package viz

import (
	"errors"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lmarzola/odelab/internal/ode"
)

func decayRHS(k float64) ode.RHS {
	return ode.RHSFunc(func(t float64, y, dydt ode.State) error {
		dydt[0] = -k * y[0]
		return nil
	})
}

func TestLiveRunMatchesBatchDriver(t *testing.T) {
	rhs := decayRHS(1.0)
	st, err := ode.NewStepper(ode.RK4, 1)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel("decay", rhs, st, ode.State{1}, 0, 2, 0.5)

	var model tea.Model = m
	for i := 0; i < 10; i++ {
		model, _ = model.(Model).Update(TickMsg{})
	}
	got := model.(Model)
	if !got.done {
		t.Fatal("live run did not finish")
	}

	sys := ode.System{RHS: rhs, Dim: 1, T0: 0, T1: 2, Y0: ode.State{1}}
	tr, err := ode.Solve(sys, ode.RK4, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	_, want := tr.Last()
	if math.Abs(got.state[0]-want[0]) != 0 {
		t.Errorf("live final state %g, batch %g", got.state[0], want[0])
	}
}

func TestLiveStopsOnCallbackFailure(t *testing.T) {
	rhs := ode.RHSFunc(func(t float64, y, dydt ode.State) error {
		return errBoom
	})
	st, err := ode.NewStepper(ode.Euler, 1)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel("broken", rhs, st, ode.State{1}, 0, 1, 0.1)

	updated, _ := m.Update(TickMsg{})
	got := updated.(Model)
	if got.err == nil {
		t.Fatal("callback failure not recorded")
	}
	if got.running {
		t.Error("model still running after failure")
	}
}

var errBoom = errors.New("boom")
