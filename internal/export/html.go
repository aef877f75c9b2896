package export

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/lmarzola/odelab/internal/ode"
)

// WriteHTML renders an interactive chart of every state column over
// time, one zoomable line series per component.
func WriteHTML(path, title, subtitle string, tr *ode.Trajectory) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	xaxis := make([]string, tr.Len())
	for i := range xaxis {
		xaxis[i] = strconv.FormatFloat(tr.Times[i], 'g', 6, 64)
	}
	line.SetXAxis(xaxis)

	for j := 0; j < tr.Dim; j++ {
		items := make([]opts.LineData, tr.Len())
		for i := 0; i < tr.Len(); i++ {
			items[i] = opts.LineData{Value: tr.Y(i)[j]}
		}
		line.AddSeries(fmt.Sprintf("x%d", j), items)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(file)
}
