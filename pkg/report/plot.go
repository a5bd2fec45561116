package report

import (
	"github.com/edp1096/toy-spme/pkg/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot points are capped so long runs stay quick to render.
const maxPlotPoints = 4000

// NewPlot draws keys against time on one axis.
func NewPlot(results Results, title, yLabel string, keys ...string) (*plot.Plot, error) {
	n, err := results.check(keys)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = yLabel

	step := stride(n, maxPlotPoints)
	time := results[analysis.KeyTime]
	lines := make([]interface{}, 0, 2*len(keys))
	for _, key := range keys {
		values := results[key]
		points := make(plotter.XYs, 0, n/step+1)
		for i := 0; i < n; i += step {
			points = append(points, plotter.XY{X: time[i], Y: values[i]})
		}
		lines = append(lines, key, points)
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveVoltagePlot writes the terminal voltage curve; the format follows the
// file extension.
func SaveVoltagePlot(path string, results Results) error {
	p, err := NewPlot(results, "Cell voltage", "Voltage (V)", analysis.KeyVoltage)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
