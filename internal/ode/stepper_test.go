package ode

import (
	"errors"
	"math"
	"testing"
)

func TestRK4StepAccuracy(t *testing.T) {
	st, err := NewStepper(RK4, 2)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}

	y := State{1, 0}
	dt := 0.01
	for i := 0; i < 100; i++ {
		// dst aliases y: the combination must stay safe in place
		if err := st.Step(oscillatorRHS{}, float64(i)*dt, y, dt, y); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if want := math.Cos(1.0); math.Abs(y[0]-want) > 1e-8 {
		t.Errorf("position after t=1: got %.10f, want %.10f", y[0], want)
	}
	if want := -math.Sin(1.0); math.Abs(y[1]-want) > 1e-8 {
		t.Errorf("velocity after t=1: got %.10f, want %.10f", y[1], want)
	}
}

// One Heun step on dy/dt = -y from y=1 with h=0.5:
// k1 = -1, k2 = -(1 + h*k1) = -0.5, y1 = 1 + h*(k1+k2)/2 = 0.625.
// Every quantity is dyadic, so the comparison is exact.
func TestHeunStepByHand(t *testing.T) {
	st, err := NewStepper(Heun, 1)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	y := State{1}
	dst := State{0}
	if err := st.Step(decayRHS{k: 1}, 0, y, 0.5, dst); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if dst[0] != 0.625 {
		t.Errorf("Heun step: got %v, want 0.625", dst[0])
	}
	if y[0] != 1 {
		t.Errorf("input state modified: %v", y[0])
	}
}

// One third order step on dy/dt = -y from y=1 with h=0.5:
// k1 = -1, k2 = -0.75, k3 = -0.75,
// y1 = 1 + 0.5*(k1/6 + 2*k2/3 + k3/6) = 0.6041666...
func TestKutta3StepByHand(t *testing.T) {
	st, err := NewStepper(Kutta3, 1)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	y := State{1}
	dst := State{0}
	if err := st.Step(decayRHS{k: 1}, 0, y, 0.5, dst); err != nil {
		t.Fatalf("Step: %v", err)
	}
	want := 1 + 0.5*(-1.0/6-2.0*0.75/3-0.75/6)
	if math.Abs(dst[0]-want) > 1e-15 {
		t.Errorf("third order step: got %v, want %v", dst[0], want)
	}
}

func TestStepperRejectsBadConfig(t *testing.T) {
	if _, err := NewStepper(Order(7), 2); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("order 7: got %v, want ErrInvalidOrder", err)
	}
	if _, err := NewStepper(RK4, 0); !errors.Is(err, ErrInvalidSystem) {
		t.Errorf("dim 0: got %v, want ErrInvalidSystem", err)
	}
}

func TestStepperOrder(t *testing.T) {
	for _, order := range []Order{Euler, Heun, Kutta3, RK4} {
		st, err := NewStepper(order, 1)
		if err != nil {
			t.Fatalf("NewStepper(%v): %v", order, err)
		}
		if st.Order() != order {
			t.Errorf("Order() = %v, want %v", st.Order(), order)
		}
	}
}

func TestStepStageFailureLeavesDstAlone(t *testing.T) {
	st, err := NewStepper(RK4, 1)
	if err != nil {
		t.Fatalf("NewStepper: %v", err)
	}
	y := State{0}
	dst := State{-7}
	err = st.Step(failingRHS{failAt: 0.5}, 0, y, 1, dst)
	var cb *CallbackError
	if !errors.As(err, &cb) {
		t.Fatalf("want *CallbackError, got %v", err)
	}
	if cb.Stage != 2 {
		t.Errorf("second stage evaluates at t=0.5: got stage %d", cb.Stage)
	}
	if dst[0] != -7 {
		t.Errorf("dst written despite stage failure: %v", dst[0])
	}
}
