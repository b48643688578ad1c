package models

// Channels is the number of intensity values stored per pixel
const Channels = 3

// Grid represents a decoded image as rows × columns of 3-channel pixels
type Grid struct {
	// Width is the number of columns in the grid
	Width int
	
	// Height is the number of rows in the grid
	Height int
	
	// Pix holds the intensities in row-major order, Channels values per pixel,
	// in the order the decoder produced them
	Pix []uint8
}

// NewGrid allocates a zeroed grid of the given dimensions
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// Offset returns the index of channel 0 of pixel (x, y) in Pix
func (g *Grid) Offset(x, y int) int {
	return (y*g.Width + x) * Channels
}

// At returns the intensity of channel c at pixel (x, y)
func (g *Grid) At(x, y, c int) uint8 {
	return g.Pix[g.Offset(x, y)+c]
}

// Set stores the intensity of channel c at pixel (x, y)
func (g *Grid) Set(x, y, c int, v uint8) {
	g.Pix[g.Offset(x, y)+c] = v
}

// Sample is a single (x, y, intensity) triple of one channel
type Sample struct {
	X, Y      int
	Intensity uint8
}

// SampleSet holds the flattened samples of one channel of a grid
type SampleSet struct {
	// Channel is the index of the channel the samples were taken from
	Channel int
	
	// Width and Height are the dimensions of the source grid
	Width, Height int
	
	// Samples are ordered row-major: row 0 left to right, then row 1, etc.
	Samples []Sample
}

// Bar is one box of a 3D bar chart: a 1×1 footprint at (X, Y) rising from z=0
type Bar struct {
	X, Y   float64
	Height float64
}
