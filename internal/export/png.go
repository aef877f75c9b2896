package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/lmarzola/odelab/internal/ode"
)

// WritePNG renders every state column against time, with the analytic
// reference drawn as a dashed black line when available.
func WritePNG(path, title string, tr *ode.Trajectory, analytic func(t float64) float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "state"
	p.Add(plotter.NewGrid())

	for j := 0; j < tr.Dim; j++ {
		pts := make(plotter.XYs, tr.Len())
		for i := 0; i < tr.Len(); i++ {
			pts[i].X = tr.Times[i]
			pts[i].Y = tr.Y(i)[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(j)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("x%d", j), line)
	}

	if analytic != nil {
		pts := make(plotter.XYs, tr.Len())
		for i := 0; i < tr.Len(); i++ {
			pts[i].X = tr.Times[i]
			pts[i].Y = analytic(tr.Times[i])
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = color.Black
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		p.Legend.Add("analytic", line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// WritePhasePNG renders state column yi against state column xi.
func WritePhasePNG(path, title string, tr *ode.Trajectory, xi, yi int) error {
	if xi < 0 || xi >= tr.Dim || yi < 0 || yi >= tr.Dim {
		return fmt.Errorf("export: phase axes (%d, %d) out of range for dimension %d", xi, yi, tr.Dim)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("x%d", xi)
	p.Y.Label.Text = fmt.Sprintf("x%d", yi)
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		pts[i].X = tr.Y(i)[xi]
		pts[i].Y = tr.Y(i)[yi]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(0)
	p.Add(line)

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
