// Package export renders trajectories to the formats the lab consumes:
// whitespace dat files with gnuplot scripts, JSON, PNG images and
// interactive HTML charts.
package export

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lmarzola/odelab/internal/ode"
)

var gnuplotColors = []string{"red", "blue", "green", "orange", "purple"}

// WriteDat writes one row per grid point: the time, the state columns,
// and when analytic is non-nil a trailing reference column. Six decimal
// fixed-point columns, space separated, the layout gnuplot eats raw.
func WriteDat(path string, tr *ode.Trajectory, analytic func(t float64) float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := 0; i < tr.Len(); i++ {
		t := tr.Times[i]
		fmt.Fprintf(w, "%f", t)
		for _, val := range tr.Y(i) {
			fmt.Fprintf(w, " %f", val)
		}
		if analytic != nil {
			fmt.Fprintf(w, " %f", analytic(t))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// GnuplotScript builds a script that plots every state column of a dat
// file written by WriteDat as points, plus the analytic reference as a
// black line when present.
func GnuplotScript(datPath, title string, dim int, withAnalytic bool) string {
	var b strings.Builder
	b.WriteString("set terminal qt\n")
	fmt.Fprintf(&b, "set title '%s'\n", title)
	b.WriteString("set xlabel 'Time t [s]'\n")
	b.WriteString("set ylabel 'state'\n")
	b.WriteString("plot ")

	for i := 0; i < dim; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		color := gnuplotColors[i%len(gnuplotColors)]
		fmt.Fprintf(&b, "'%s' using 1:%d with points pt 7 ps 1 lc rgb '%s' title 'x%d(t)'",
			datPath, i+2, color, i)
	}
	if withAnalytic {
		fmt.Fprintf(&b, ", '%s' using 1:%d with lines lc rgb 'black' title 'x_a(t)'",
			datPath, dim+2)
	}
	b.WriteString("\n")
	return b.String()
}

// WriteGnuplot writes the companion plot script next to a dat file.
func WriteGnuplot(path, datPath, title string, dim int, withAnalytic bool) error {
	return os.WriteFile(path, []byte(GnuplotScript(datPath, title, dim, withAnalytic)), 0644)
}
