// Package plot renders occupancy profiles as PNG line charts, one line per
// checkpoint, with the state index on the x axis.
package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/nvandessel/mlwalk/internal/output"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToPlot reports a table with no rows or fewer than two states.
var ErrNothingToPlot = errors.New("table has nothing to plot")

// Options controls the rendered image.
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions returns a 1024x640 chart.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 640}
}

// palette runs from early (cool) to late (warm) checkpoints.
var palette = []drawing.Color{
	{R: 49, G: 54, B: 149, A: 255},
	{R: 69, G: 117, B: 180, A: 255},
	{R: 116, G: 173, B: 209, A: 255},
	{R: 171, G: 217, B: 233, A: 255},
	{R: 254, G: 224, B: 144, A: 255},
	{R: 253, G: 174, B: 97, A: 255},
	{R: 244, G: 109, B: 67, A: 255},
	{R: 215, G: 48, B: 39, A: 255},
	{R: 165, G: 0, B: 38, A: 255},
}

// rowColor spreads n rows across the palette.
func rowColor(r, n int) drawing.Color {
	if n <= 1 {
		return palette[len(palette)-1]
	}
	return palette[r*(len(palette)-1)/(n-1)]
}

// Render writes t as a PNG to w.
func Render(w io.Writer, t *output.Table, opts Options) error {
	states := t.States()
	if len(t.Counts) == 0 || states < 2 {
		return ErrNothingToPlot
	}

	xs := make([]float64, states)
	for s := range xs {
		xs[s] = float64(s)
	}

	var peak int64
	series := make([]chart.Series, 0, len(t.Counts))
	for r, counts := range t.Counts {
		ys := make([]float64, states)
		for s, c := range counts {
			ys[s] = float64(c)
			peak = max(peak, c)
		}
		name := "t=" + output.FormatTime(t.Times[r])
		if r == len(t.Counts)-1 {
			name += " (end)"
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: rowColor(r, len(t.Counts)),
				StrokeWidth: 2.0,
			},
		})
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:  "state",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(states - 1)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "particles",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max(peak, 1)) * 1.05},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
