package export

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartKind identifies one of the three summary charts.
type ChartKind string

const (
	// ChartPerson is the per-person bar chart.
	ChartPerson ChartKind = "pessoa"
	// ChartRegion is the per-region bar chart.
	ChartRegion ChartKind = "regiao"
	// ChartMonth is the monthly line chart.
	ChartMonth ChartKind = "mensal"
)

// ChartKinds lists the charts in display order.
var ChartKinds = []ChartKind{ChartPerson, ChartRegion, ChartMonth}

// ParseChartKind validates a chart kind name.
func ParseChartKind(s string) (ChartKind, error) {
	for _, k := range ChartKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart %q (expected pessoa, regiao or mensal)", s)
}

// FileName returns the fixed export file name of the chart.
func (k ChartKind) FileName() string {
	switch k {
	case ChartPerson:
		return constants.PersonChartFileName
	case ChartRegion:
		return constants.RegionChartFileName
	case ChartMonth:
		return constants.MonthChartFileName
	}
	return string(k) + ".png"
}

// ChartOptions sets the rendered image size in inches.
type ChartOptions struct {
	Width  float64
	Height float64
}

// DefaultChartOptions returns the default chart size.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: constants.DefaultChartWidth, Height: constants.DefaultChartHeight}
}

func (o ChartOptions) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = constants.DefaultChartWidth
	}
	if h <= 0 {
		h = constants.DefaultChartHeight
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	orange  = color.RGBA{R: 255, G: 165, A: 255}
	green   = color.RGBA{G: 128, A: 255}
)

const valueAxisLabel = "Valor Total (R$)"

// RenderChart draws the chart of the given kind from s as a PNG image.
func RenderChart(kind ChartKind, s report.Summary, opts ChartOptions) ([]byte, error) {
	switch kind {
	case ChartPerson:
		return barChartPNG("Total por Pessoa", constants.ColumnPerson, s.ByPerson, skyBlue, opts)
	case ChartRegion:
		return barChartPNG("Total por Região", constants.ColumnRegion, s.ByRegion, orange, opts)
	case ChartMonth:
		return lineChartPNG("Evolução Mensal Geral", constants.ColumnMonth, s.ByMonth, green, opts)
	}
	return nil, fmt.Errorf("unknown chart %q", kind)
}

func barChartPNG(title, xLabel string, totals []report.Total, c color.Color, opts ChartOptions) ([]byte, error) {
	p := newPlot(title, xLabel)
	width, height := opts.size()

	if len(totals) > 0 {
		values := make(plotter.Values, len(totals))
		labels := make([]string, len(totals))
		for i, t := range totals {
			values[i] = t.Value()
			labels[i] = t.Label
		}

		bars, err := plotter.NewBarChart(values, barWidth(width, len(totals)))
		if err != nil {
			return nil, fmt.Errorf("failed to build bar chart: %w", err)
		}
		bars.Color = c
		bars.LineStyle.Width = 0
		p.Add(bars)
		nominalX(p, labels)
	}

	return encodePNG(p, width, height)
}

// lineChartPNG draws one connected line per run of consecutive months with
// data, so months without records leave a gap instead of reading as zero.
func lineChartPNG(title, xLabel string, totals []report.Total, c color.Color, opts ChartOptions) ([]byte, error) {
	p := newPlot(title, xLabel)
	p.Add(plotter.NewGrid())
	width, height := opts.size()

	var run plotter.XYs
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		line, points, err := plotter.NewLinePoints(run)
		if err != nil {
			return fmt.Errorf("failed to build line chart: %w", err)
		}
		line.Color = c
		line.Width = vg.Points(1.5)
		points.Shape = draw.CircleGlyph{}
		points.Color = c
		p.Add(line, points)
		run = nil
		return nil
	}

	labels := make([]string, len(totals))
	var present []float64
	for i, t := range totals {
		labels[i] = t.Label
		if !t.Present() {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		run = append(run, plotter.XY{X: float64(i), Y: t.Value()})
		present = append(present, t.Value())
	}
	if err := flush(); err != nil {
		return nil, err
	}
	nominalX(p, labels)
	anchorY(p, present)

	return encodePNG(p, width, height)
}

func newPlot(title, xLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = valueAxisLabel
	return p
}

// nominalX labels the x axis with one category per integer position and
// pins the range so every category stays visible.
func nominalX(p *plot.Plot, labels []string) {
	if len(labels) == 0 {
		return
	}
	p.NominalX(labels...)
	p.X.Min = -0.5
	p.X.Max = float64(len(labels)) - 0.5
	if len(labels) > 4 {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
}

// anchorY starts a non-negative value axis at zero and leaves headroom above
// the largest value.
func anchorY(p *plot.Plot, values []float64) {
	if len(values) == 0 || floats.Min(values) < 0 {
		return
	}
	p.Y.Min = 0
	if top := floats.Max(values); top > 0 {
		p.Y.Max = top * 1.05
	}
}

func barWidth(plotWidth vg.Length, n int) vg.Length {
	w := plotWidth * 0.6 / vg.Length(n)
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	if w < vg.Points(2) {
		w = vg.Points(2)
	}
	return w
}

func encodePNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}
	return buf.Bytes(), nil
}
