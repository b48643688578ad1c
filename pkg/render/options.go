package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"channelhist/internal/models"
)

// minPanelSize leaves room for the title and margins
const minPanelSize = 64

// Options control the layout and look of a figure
type Options struct {
	// PanelWidth and PanelHeight are the pixel size of each chart
	PanelWidth  int
	PanelHeight int

	// Elevation and Azimuth position the camera, in degrees
	Elevation float64
	Azimuth   float64

	// ZMax is the top of the z axis; 255 fits 8-bit imagery
	ZMax float64

	// Background fills the figure behind the panels
	Background color.Color

	// Colors and Titles are indexed by channel
	Colors [models.Channels]colorful.Color
	Titles [models.Channels]string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	opts := Options{
		PanelWidth:  480,
		PanelHeight: 400,
		Elevation:   30,
		Azimuth:     -60,
		ZMax:        255,
		Background:  color.White,
		Titles:      [models.Channels]string{"R channel", "G channel", "B channel"},
	}

	// Hex parsing of these constants cannot fail
	opts.Colors[0], _ = colorful.Hex("#d62728")
	opts.Colors[1], _ = colorful.Hex("#2ca02c")
	opts.Colors[2], _ = colorful.Hex("#1f77b4")

	return opts
}

// ParseColors converts hex strings such as "#ff0000" into channel colours
func ParseColors(hex []string) ([models.Channels]colorful.Color, error) {
	var colors [models.Channels]colorful.Color
	if len(hex) != models.Channels {
		return colors, fmt.Errorf("expected %d channel colors, got %d", models.Channels, len(hex))
	}
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return colors, fmt.Errorf("invalid color for channel %d: %w", i, err)
		}
		colors[i] = c
	}
	return colors, nil
}

// Validate reports options that cannot produce a figure
func (o Options) Validate() error {
	if o.PanelWidth < minPanelSize || o.PanelHeight < minPanelSize {
		return fmt.Errorf("panel size must be at least %dx%d, got %dx%d",
			minPanelSize, minPanelSize, o.PanelWidth, o.PanelHeight)
	}
	if o.ZMax <= 0 {
		return fmt.Errorf("z axis maximum must be positive, got %g", o.ZMax)
	}
	if o.Elevation <= 0 || o.Elevation > 90 {
		return fmt.Errorf("elevation must be in (0, 90] degrees, got %g", o.Elevation)
	}
	return nil
}

// shades holds the face colours of one channel's bars
type shades struct {
	top, sideX, sideY color.RGBA
}

// shadesFor darkens the base colour for the side faces so the bars read as solids
func shadesFor(base colorful.Color) shades {
	black := colorful.Color{}
	return shades{
		top:   toRGBA(base),
		sideX: toRGBA(base.BlendLab(black, 0.25).Clamped()),
		sideY: toRGBA(base.BlendLab(black, 0.45).Clamped()),
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
