package ode

import "fmt"

// Order selects one of the classical explicit Runge-Kutta methods. The
// integer value is both the order of accuracy and the stage count.
type Order int

const (
	Euler  Order = 1 // forward Euler
	Heun   Order = 2 // Heun's second-order method
	Kutta3 Order = 3 // Kutta's third-order method
	RK4    Order = 4 // classical fourth-order Runge-Kutta
)

func (o Order) String() string {
	switch o {
	case Euler:
		return "euler"
	case Heun:
		return "heun"
	case Kutta3:
		return "kutta3"
	case RK4:
		return "rk4"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// tableau holds the Butcher coefficients of one explicit method: stage
// time fractions c, stage combination weights a (strictly lower
// triangular, row i holding the weights of stages 0..i-1) and the final
// combination weights b. The tables are fixed constants; nothing mutates
// them after init.
type tableau struct {
	order Order
	c     []float64
	a     [][]float64
	b     []float64
}

func (tb tableau) stages() int { return len(tb.b) }

var tableaus = map[Order]tableau{
	Euler: {
		order: Euler,
		c:     []float64{0},
		a:     [][]float64{{}},
		b:     []float64{1},
	},
	Heun: {
		order: Heun,
		c:     []float64{0, 1},
		a:     [][]float64{{}, {1}},
		b:     []float64{1.0 / 2.0, 1.0 / 2.0},
	},
	Kutta3: {
		order: Kutta3,
		c:     []float64{0, 1.0 / 2.0, 1},
		a:     [][]float64{{}, {1.0 / 2.0}, {-1, 2}},
		b:     []float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
	},
	RK4: {
		order: RK4,
		c:     []float64{0, 1.0 / 2.0, 1.0 / 2.0, 1},
		a:     [][]float64{{}, {1.0 / 2.0}, {0, 1.0 / 2.0}, {0, 0, 1}},
		b:     []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
	},
}

func tableauFor(order Order) (tableau, error) {
	tb, ok := tableaus[order]
	if !ok {
		return tableau{}, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	return tb, nil
}
