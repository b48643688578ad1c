package visualization

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"channelhist/internal/models"
)

// Viewer gives access to the individual planes and regions of a decoded
// pixel grid and saves the rendered figure.
type Viewer struct {
	// grid holds the decoded image
	grid *models.Grid
}

// NewViewer creates a new viewer over the given grid
func NewViewer(grid *models.Grid) *Viewer {
	return &Viewer{
		grid: grid,
	}
}

// ExtractChannel returns channel c of the grid as a grayscale image.
// Gray levels are the raw channel intensities.
func (v *Viewer) ExtractChannel(c int) (*image.Gray, error) {
	if c < 0 || c >= models.Channels {
		return nil, fmt.Errorf("invalid channel: %d (must be 0..%d)", c, models.Channels-1)
	}

	img := image.NewGray(image.Rect(0, 0, v.grid.Width, v.grid.Height))
	for y := 0; y < v.grid.Height; y++ {
		for x := 0; x < v.grid.Width; x++ {
			img.Pix[img.PixOffset(x, y)] = v.grid.At(x, y, c)
		}
	}

	return img, nil
}

// ExtractRegion copies the rectangle starting at (startX, startY) of the
// given size into a new grid
func (v *Viewer) ExtractRegion(startX, startY, sizeX, sizeY int) (*models.Grid, error) {
	// Validate parameters
	if startX < 0 || startY < 0 {
		return nil, fmt.Errorf("start coordinates must be non-negative")
	}

	if sizeX <= 0 || sizeY <= 0 {
		return nil, fmt.Errorf("size dimensions must be positive")
	}

	if startX+sizeX > v.grid.Width || startY+sizeY > v.grid.Height {
		return nil, fmt.Errorf("region extends beyond image boundaries")
	}

	// Copy row by row
	region := models.NewGrid(sizeX, sizeY)
	for y := 0; y < sizeY; y++ {
		src := v.grid.Offset(startX, startY+y)
		dst := region.Offset(0, y)
		copy(region.Pix[dst:dst+sizeX*models.Channels], v.grid.Pix[src:src+sizeX*models.Channels])
	}

	return region, nil
}

// SaveImage saves an image as PNG
func (v *Viewer) SaveImage(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveChannelSequence extracts every channel and saves it as
// channel_<index>.png in outputDir
func (v *Viewer) SaveChannelSequence(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for c := 0; c < models.Channels; c++ {
		img, err := v.ExtractChannel(c)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("channel_%d.png", c))
		if err := v.SaveImage(img, filename); err != nil {
			return err
		}
	}

	return nil
}
