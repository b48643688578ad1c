// Package decode turns encoded raster images into 3-channel pixel grids.
// Format support is whatever the registered image decoders provide; no
// validation happens beyond what those decoders enforce.
package decode

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoder.
	_ "image/jpeg" // Register JPEG decoder.
	_ "image/png"  // Register PNG decoder.
	"io"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // Register BMP decoder.
	_ "golang.org/x/image/tiff" // Register TIFF decoder.
	_ "golang.org/x/image/webp" // Register WebP decoder.

	"channelhist/internal/models"
)

// DecodeError reports that an image could not be read or decoded.
// Err is the untranslated error returned by the filesystem or the decoder.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Load reads the file at path into a pixel grid
func Load(path string) (*models.Grid, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	grid, _, err := Decode(file)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Path = path
		}
		return nil, err
	}

	return grid, nil
}

// Decode reads an encoded image from r and returns its grid together with
// the name of the format that decoded it.
func Decode(r io.Reader) (*models.Grid, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}

	return FromImage(img), format, nil
}

// FromImage copies img into a grid. Channels keep the decoder's order
// (R, G, B for every Go decoder), alpha is dropped and values are
// non-premultiplied 8-bit.
func FromImage(img image.Image) *models.Grid {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	grid := models.NewGrid(width, height)

	// NRGBA sources need no conversion
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+width*4]
			for x := 0; x < width; x++ {
				i := grid.Offset(x, y)
				grid.Pix[i] = row[x*4]
				grid.Pix[i+1] = row[x*4+1]
				grid.Pix[i+2] = row[x*4+2]
			}
		}
		return grid
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := grid.Offset(x, y)
			grid.Pix[i] = c.R
			grid.Pix[i+1] = c.G
			grid.Pix[i+2] = c.B
		}
	}

	return grid
}

// ToImage returns an opaque NRGBA image holding the grid's three channels
func ToImage(grid *models.Grid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			i := grid.Offset(x, y)
			j := img.PixOffset(x, y)
			img.Pix[j] = grid.Pix[i]
			img.Pix[j+1] = grid.Pix[i+1]
			img.Pix[j+2] = grid.Pix[i+2]
			img.Pix[j+3] = 0xFF
		}
	}
	return img
}

// Downsample shrinks the grid so that its longest side is at most maxDim.
// A non-positive maxDim, or a grid that already fits, is returned unchanged.
// Shrinking averages neighbouring pixels.
func Downsample(grid *models.Grid, maxDim int) *models.Grid {
	if maxDim <= 0 || (grid.Width <= maxDim && grid.Height <= maxDim) {
		return grid
	}

	// Keep the aspect ratio; resize derives the missing side when it is 0
	var width, height uint
	if grid.Width >= grid.Height {
		width = uint(maxDim)
	} else {
		height = uint(maxDim)
	}

	resized := resize.Resize(width, height, ToImage(grid), resize.NearestNeighbor)
	return FromImage(resized)
}
