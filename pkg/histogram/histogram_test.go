package histogram

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"channelhist/internal/models"
)

// createTestSets builds three 16x16 sample sets with distinct distributions
func createTestSets() [models.Channels]models.SampleSet {
	var sets [models.Channels]models.SampleSet
	for c := range sets {
		sets[c] = models.SampleSet{Channel: c, Width: 16, Height: 16}
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				sets[c].Samples = append(sets[c].Samples, models.Sample{
					X: x, Y: y, Intensity: uint8((x*16 + y + c*40) % 256),
				})
			}
		}
	}
	return sets
}

func testColors() [models.Channels]colorful.Color {
	return [models.Channels]colorful.Color{
		{R: 1}, {G: 1}, {B: 1},
	}
}

// TestFromSets verifies names, colours and counts of the series
func TestFromSets(t *testing.T) {
	series := FromSets(createTestSets(), [3]string{"R", "", "B"}, testColors())
	if len(series) != 3 {
		t.Fatalf("Expected 3 series, got %d", len(series))
	}

	if series[0].Name != "R" || series[1].Name != "Channel 1" {
		t.Errorf("Unexpected series names: %q, %q", series[0].Name, series[1].Name)
	}
	if series[1].Color.G != 255 || series[1].Color.R != 0 {
		t.Errorf("Expected green series colour, got %+v", series[1].Color)
	}

	for _, s := range series {
		total := 0
		for _, n := range s.Counts {
			total += n
		}
		if total != 256 {
			t.Errorf("%s: expected 256 counted samples, got %d", s.Name, total)
		}
	}
}

// TestRender verifies that the chart renders to a decodable PNG of the requested size
func TestRender(t *testing.T) {
	series := FromSets(createTestSets(), [3]string{"R", "G", "B"}, testColors())

	var buf bytes.Buffer
	if err := Render(&buf, series, 640, 360); err != nil {
		t.Fatalf("Failed to render histogram: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Rendered histogram is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 360 {
		t.Errorf("Expected 640x360 chart, got %dx%d", b.Dx(), b.Dy())
	}
}

// TestSave verifies that the chart is written to disk
func TestSave(t *testing.T) {
	// Skip this test in short mode
	if testing.Short() {
		t.Skip("Skipping file I/O test in short mode")
	}

	filename := filepath.Join(t.TempDir(), "hist.png")
	series := FromSets(createTestSets(), [3]string{"R", "G", "B"}, testColors())
	if err := Save(filename, series, 400, 300); err != nil {
		t.Fatalf("Failed to save histogram: %v", err)
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		t.Errorf("Saved file does not exist: %s", filename)
	}
}
