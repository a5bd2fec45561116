package report

import (
	"io"

	"github.com/edp1096/toy-spme/pkg/analysis"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Browsers choke on six-figure series, so the page is decimated.
const maxChartPoints = 2000

func newLine(title, subtitle string) *charts.Line {
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
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "s",
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
	return line
}

func fillLine(line *charts.Line, results Results, n int, keys ...string) {
	step := stride(n, maxChartPoints)
	time := results[analysis.KeyTime]

	axis := make([]float64, 0, n/step+1)
	for i := 0; i < n; i += step {
		axis = append(axis, time[i])
	}
	line.SetXAxis(axis)

	for _, key := range keys {
		values := results[key]
		items := make([]opts.LineData, 0, len(axis))
		for i := 0; i < n; i += step {
			items = append(items, opts.LineData{Value: values[i]})
		}
		line.AddSeries(key, items, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
}

// RenderHTML writes a page with the voltage, current and overpotential
// curves of a transient analysis.
func RenderHTML(w io.Writer, title string, results Results) error {
	voltageKeys := []string{analysis.KeyVoltage, analysis.KeyOCVPositive, analysis.KeyOCVNegative}
	currentKeys := []string{analysis.KeyCurrent}
	etaKeys := []string{analysis.KeyEtaNegative, analysis.KeyEtaPositive, analysis.KeyEtaElectrolyte}

	n, err := results.check(append(append(append([]string{}, voltageKeys...), currentKeys...), etaKeys...))
	if err != nil {
		return err
	}

	lineV := newLine(title, "Terminal and open-circuit voltages (V)")
	fillLine(lineV, results, n, voltageKeys...)

	lineI := newLine("Applied current", "Positive charges (A)")
	fillLine(lineI, results, n, currentKeys...)

	lineEta := newLine("Overpotentials", "Kinetic and electrolyte terms (V)")
	fillLine(lineEta, results, n, etaKeys...)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(lineV, lineI, lineEta)
	return page.Render(w)
}
