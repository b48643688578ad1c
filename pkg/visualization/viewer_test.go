package visualization

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"channelhist/internal/models"
)

// createTestGrid fills a grid with a distinct pattern per channel
func createTestGrid(width, height int) *models.Grid {
	grid := models.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			grid.Set(x, y, 0, uint8(x))
			grid.Set(x, y, 1, uint8(y))
			grid.Set(x, y, 2, uint8(x*y))
		}
	}
	return grid
}

// TestNewViewer verifies that a new viewer keeps the grid it was given
func TestNewViewer(t *testing.T) {
	grid := createTestGrid(10, 5)
	viewer := NewViewer(grid)

	if viewer.grid != grid {
		t.Error("Expected viewer to reference the given grid")
	}
}

// TestExtractChannel verifies that channel planes carry the raw intensities
func TestExtractChannel(t *testing.T) {
	width, height := 10, 6
	grid := createTestGrid(width, height)
	viewer := NewViewer(grid)

	for c := 0; c < models.Channels; c++ {
		img, err := viewer.ExtractChannel(c)
		if err != nil {
			t.Fatalf("Failed to extract channel %d: %v", c, err)
		}

		// Verify dimensions
		bounds := img.Bounds()
		if bounds.Dx() != width || bounds.Dy() != height {
			t.Errorf("Expected channel dimensions %dx%d, got %dx%d",
				width, height, bounds.Dx(), bounds.Dy())
		}

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if got, want := img.GrayAt(x, y).Y, grid.At(x, y, c); got != want {
					t.Errorf("Channel %d at (%d,%d): expected %d, got %d", c, x, y, want, got)
				}
			}
		}
	}

	// Test invalid channel
	if _, err := viewer.ExtractChannel(3); err == nil {
		t.Error("Expected error for invalid channel, got nil")
	}
}

// TestExtractRegion verifies that regions are correctly extracted
func TestExtractRegion(t *testing.T) {
	grid := createTestGrid(10, 10)
	viewer := NewViewer(grid)

	startX, startY := 2, 3
	sizeX, sizeY := 4, 5

	region, err := viewer.ExtractRegion(startX, startY, sizeX, sizeY)
	if err != nil {
		t.Fatalf("Failed to extract region: %v", err)
	}

	if region.Width != sizeX || region.Height != sizeY {
		t.Fatalf("Expected region %dx%d, got %dx%d", sizeX, sizeY, region.Width, region.Height)
	}

	for y := 0; y < sizeY; y++ {
		for x := 0; x < sizeX; x++ {
			for c := 0; c < models.Channels; c++ {
				if got, want := region.At(x, y, c), grid.At(startX+x, startY+y, c); got != want {
					t.Errorf("Region value mismatch at (%d,%d,%d): expected %d, got %d", x, y, c, want, got)
				}
			}
		}
	}

	// Test invalid parameters
	if _, err := viewer.ExtractRegion(-1, 0, 1, 1); err == nil {
		t.Error("Expected error for negative start coordinate, got nil")
	}

	if _, err := viewer.ExtractRegion(0, 0, 0, 1); err == nil {
		t.Error("Expected error for zero size, got nil")
	}

	if _, err := viewer.ExtractRegion(9, 0, 2, 1); err == nil {
		t.Error("Expected error for region extending beyond image, got nil")
	}
}

// TestSaveChannelSequence verifies that every channel plane is saved losslessly
func TestSaveChannelSequence(t *testing.T) {
	// Skip this test in short mode
	if testing.Short() {
		t.Skip("Skipping file I/O test in short mode")
	}

	grid := createTestGrid(5, 5)
	viewer := NewViewer(grid)

	outputDir := filepath.Join(t.TempDir(), "planes")
	if err := viewer.SaveChannelSequence(outputDir); err != nil {
		t.Fatalf("Failed to save channel sequence: %v", err)
	}

	for c := 0; c < models.Channels; c++ {
		filename := filepath.Join(outputDir, fmt.Sprintf("channel_%d.png", c))
		file, err := os.Open(filename)
		if err != nil {
			t.Fatalf("Expected channel file %s: %v", filename, err)
		}
		img, err := png.Decode(file)
		file.Close()
		if err != nil {
			t.Fatalf("Failed to decode %s: %v", filename, err)
		}

		gray, ok := img.(*image.Gray)
		if !ok {
			t.Fatalf("Expected *image.Gray, got %T", img)
		}
		if got, want := gray.GrayAt(4, 3).Y, grid.At(4, 3, c); got != want {
			t.Errorf("Channel %d: expected %d at (4,3), got %d", c, want, got)
		}
	}
}
