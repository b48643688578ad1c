// Package channels flattens pixel grids into per-channel sample sets and
// summarises them.
package channels

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"channelhist/internal/models"
)

// Flatten visits every pixel of grid in row-major order (row 0 left to
// right, then row 1, and so on) and emits one (x, y, intensity) triple of
// channel c per pixel. Intensities are copied unmodified.
func Flatten(grid *models.Grid, c int) (models.SampleSet, error) {
	if c < 0 || c >= models.Channels {
		return models.SampleSet{}, fmt.Errorf("invalid channel %d (must be 0..%d)", c, models.Channels-1)
	}

	set := models.SampleSet{
		Channel: c,
		Width:   grid.Width,
		Height:  grid.Height,
		Samples: make([]models.Sample, 0, grid.Width*grid.Height),
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			set.Samples = append(set.Samples, models.Sample{
				X:         x,
				Y:         y,
				Intensity: grid.At(x, y, c),
			})
		}
	}

	return set, nil
}

// FlattenAll flattens each of the grid's channels independently
func FlattenAll(grid *models.Grid) [models.Channels]models.SampleSet {
	var sets [models.Channels]models.SampleSet
	for c := range sets {
		// c is always in range here
		sets[c], _ = Flatten(grid, c)
	}
	return sets
}

// Summary holds descriptive statistics of one channel
type Summary struct {
	Channel int
	Count   int
	Min     uint8
	Max     uint8
	Mean    float64
	StdDev  float64
}

// Summarize computes descriptive statistics over a sample set.
// An empty set yields a zero summary.
func Summarize(set models.SampleSet) Summary {
	s := Summary{Channel: set.Channel, Count: len(set.Samples)}
	if s.Count == 0 {
		return s
	}

	values := make([]float64, len(set.Samples))
	s.Min = set.Samples[0].Intensity
	for i, sample := range set.Samples {
		values[i] = float64(sample.Intensity)
		if sample.Intensity < s.Min {
			s.Min = sample.Intensity
		}
		if sample.Intensity > s.Max {
			s.Max = sample.Intensity
		}
	}

	s.Mean = stat.Mean(values, nil)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}

	return s
}

// Counts returns how many samples carry each of the 256 intensity levels
func Counts(set models.SampleSet) [256]int {
	var counts [256]int
	for _, sample := range set.Samples {
		counts[sample.Intensity]++
	}
	return counts
}
