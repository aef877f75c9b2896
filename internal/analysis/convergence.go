package analysis

import (
	"fmt"
	"math"

	"github.com/lmarzola/odelab/internal/ode"
)

// Point is one rung of a refinement study.
type Point struct {
	Step     float64 `json:"step"`
	Error    float64 `json:"error"`
	Observed float64 `json:"observed"` // log2 of the error drop from the previous rung
}

type Study struct {
	Order  ode.Order
	Points []Point
}

// Converge halves the step size levels times and measures the global
// error at the last grid time the coarsest run reaches. The reference
// solution is fourth order, two halvings finer than the finest rung, so
// its own error stays far below every measurement. For smooth systems
// the observed orders approach the method order.
func Converge(sys ode.System, order ode.Order, h0 float64, levels int) (*Study, error) {
	if levels < 2 {
		return nil, fmt.Errorf("analysis: need at least 2 refinement levels, got %d", levels)
	}
	cmpSteps := ode.GridSize(sys.T0, sys.T1, h0) - 1
	if cmpSteps < 1 {
		return nil, fmt.Errorf("analysis: step %g leaves no room to refine over [%g, %g]", h0, sys.T0, sys.T1)
	}

	// Halving keeps every coarse grid time on the finer grids, so all
	// runs are compared at bitwise identical times.
	ref, err := solveRow(sys, ode.RK4, h0/float64(int(1)<<(levels+1)), cmpSteps<<(levels+1))
	if err != nil {
		return nil, err
	}

	study := &Study{Order: order, Points: make([]Point, 0, levels)}
	for k := 0; k < levels; k++ {
		h := h0 / float64(int(1)<<k)
		y, err := solveRow(sys, order, h, cmpSteps<<k)
		if err != nil {
			return nil, err
		}
		p := Point{Step: h, Error: dist(y, ref)}
		if k > 0 {
			prev := study.Points[k-1].Error
			if p.Error > 0 && prev > 0 {
				p.Observed = math.Log2(prev / p.Error)
			}
		}
		study.Points = append(study.Points, p)
	}
	return study, nil
}

func solveRow(sys ode.System, order ode.Order, h float64, row int) (ode.State, error) {
	tr, err := ode.Solve(sys, order, h)
	if err != nil {
		return nil, err
	}
	return tr.Y(row).Clone(), nil
}

func dist(a, b ode.State) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
