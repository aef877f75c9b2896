package ode

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Error("clone shares backing storage with the original")
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{1, -2, 0}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(-1)}).IsValid() {
		t.Error("infinite state reported valid")
	}
}

func TestStateNorm(t *testing.T) {
	if got := (State{3, 4}).Norm(); got != 5 {
		t.Errorf("Norm = %v, want 5", got)
	}
	if got := (State{}).Norm(); got != 0 {
		t.Errorf("empty Norm = %v, want 0", got)
	}
}

func TestTrajectoryAccessors(t *testing.T) {
	tr := &Trajectory{Dim: 2, Times: []float64{0, 1}, States: []float64{1, 2, 3, 4}}
	if tr.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tr.Len())
	}
	if row := tr.Y(1); row[0] != 3 || row[1] != 4 {
		t.Errorf("Y(1) = %v, want [3 4]", row)
	}
	tf, yf := tr.Last()
	if tf != 1 || yf[0] != 3 || yf[1] != 4 {
		t.Errorf("Last = %v, %v", tf, yf)
	}

	tr.Y(0)[0] = 9
	if tr.States[0] != 9 {
		t.Error("Y should alias the trajectory storage")
	}
}
