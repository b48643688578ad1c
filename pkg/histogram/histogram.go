// Package histogram renders the intensity distribution of each channel as a
// conventional 2D line chart, a companion to the 3D bar charts.
package histogram

import (
	"fmt"
	"io"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"channelhist/internal/models"
	"channelhist/pkg/channels"
)

// Series holds the 256-bin distribution of one channel
type Series struct {
	Name   string
	Color  drawing.Color
	Counts [256]int
}

// FromSets builds one series per sample set, named and coloured per channel
func FromSets(sets [models.Channels]models.SampleSet, names [models.Channels]string, colors [models.Channels]colorful.Color) []Series {
	series := make([]Series, len(sets))
	for c, set := range sets {
		r, g, b := colors[c].RGB255()
		series[c] = Series{
			Name:   names[c],
			Color:  drawing.Color{R: r, G: g, B: b, A: 255},
			Counts: channels.Counts(set),
		}
		if series[c].Name == "" {
			series[c].Name = fmt.Sprintf("Channel %d", c)
		}
	}
	return series
}

// Chart builds the go-chart definition for the given series
func Chart(series []Series, width, height int) chart.Chart {
	xs := make([]float64, 256)
	for i := range xs {
		xs[i] = float64(i)
	}

	ch := chart.Chart{
		Title:  "Channel intensity distribution",
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  "Intensity",
			Range: &chart.ContinuousRange{Min: 0, Max: 255},
		},
		YAxis: chart.YAxis{
			Name: "Pixels",
		},
	}

	for _, s := range series {
		ys := make([]float64, 256)
		for i, n := range s.Counts {
			ys[i] = float64(n)
		}
		ch.Series = append(ch.Series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: s.Color,
				StrokeWidth: 1.5,
			},
		})
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch
}

// Render writes the chart as PNG to w
func Render(w io.Writer, series []Series, width, height int) error {
	ch := Chart(series, width, height)
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render histogram: %w", err)
	}
	return nil
}

// Save renders the chart as PNG into filename
func Save(filename string, series []Series, width, height int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create histogram file: %w", err)
	}
	defer file.Close()

	return Render(file, series, width, height)
}
