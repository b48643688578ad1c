// Package render draws per-channel 3D bar charts. Every sample becomes a bar
// with a 1×1 footprint anchored at its (x, y) coordinate, rising from z=0 to
// the sample's intensity. The figure places one chart per channel side by side.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"channelhist/internal/models"
)

const (
	titleHeight = 22
	margin      = 16
)

var (
	paneColor = color.RGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF}
	edgeColor = color.RGBA{R: 0xB0, G: 0xB0, B: 0xB0, A: 0xFF}
	textColor = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
)

// Bars converts a sample set into chart bars. Heights are the raw intensities.
func Bars(set models.SampleSet) []models.Bar {
	bars := make([]models.Bar, len(set.Samples))
	for i, s := range set.Samples {
		bars[i] = models.Bar{
			X:      float64(s.X),
			Y:      float64(s.Y),
			Height: float64(s.Intensity),
		}
	}
	return bars
}

// Figure renders one chart per channel, side by side, into a single image
func Figure(sets [models.Channels]models.SampleSet, opts Options) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fig := image.NewRGBA(image.Rect(0, 0, opts.PanelWidth*models.Channels, opts.PanelHeight))
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(fig, fig.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for c, set := range sets {
		rect := image.Rect(c*opts.PanelWidth, 0, (c+1)*opts.PanelWidth, opts.PanelHeight)
		Panel(fig, rect, set, opts, c)
	}

	return fig, nil
}

// Panel draws the chart of one sample set into rect of dst, using the colour
// and title configured for channel c.
func Panel(dst *image.RGBA, rect image.Rectangle, set models.SampleSet, opts Options, c int) {
	p := newPainter(dst)

	title := opts.Titles[c]
	if title == "" {
		title = fmt.Sprintf("Channel %d", c)
	}
	tx := rect.Min.X + (rect.Dx()-textWidth(title))/2
	p.text(title, tx, rect.Min.Y+titleHeight-6, textColor)

	extent := r3.Vec{X: float64(set.Width), Y: float64(set.Height), Z: opts.ZMax}
	cam := NewCamera(extent, opts.Elevation, opts.Azimuth,
		float64(rect.Min.X+margin), float64(rect.Max.Y-margin),
		float64(rect.Dx()-2*margin), float64(rect.Dy()-2*margin-titleHeight))

	drawPanes(p, cam)
	drawBars(p, cam, Bars(set), shadesFor(opts.Colors[c]))
	drawAxisLabels(p, cam, set)
}

// drawPanes fills the floor and the two far walls of the plot box
func drawPanes(p *painter, cam *Camera) {
	e := cam.Extent()

	// Far walls sit on the side of the box away from the eye
	farX, farY := 0.0, 0.0
	if cam.Facing(r3.Vec{X: -1}) {
		farX = e.X
	}
	if cam.Facing(r3.Vec{Y: -1}) {
		farY = e.Y
	}

	walls := [][4]r3.Vec{
		{{X: 0, Y: 0, Z: 0}, {X: e.X, Y: 0, Z: 0}, {X: e.X, Y: e.Y, Z: 0}, {X: 0, Y: e.Y, Z: 0}},
		{{X: farX, Y: 0, Z: 0}, {X: farX, Y: e.Y, Z: 0}, {X: farX, Y: e.Y, Z: e.Z}, {X: farX, Y: 0, Z: e.Z}},
		{{X: 0, Y: farY, Z: 0}, {X: e.X, Y: farY, Z: 0}, {X: e.X, Y: farY, Z: e.Z}, {X: 0, Y: farY, Z: e.Z}},
	}
	for _, wall := range walls {
		pts := make([]point, len(wall))
		for i, v := range wall {
			pts[i].X, pts[i].Y = cam.Project(v)
		}
		p.fill(pts, paneColor)
		for i := range pts {
			p.line(pts[i], pts[(i+1)%len(pts)], 1, edgeColor)
		}
	}
}

// drawBars paints bars back to front. On a regular grid the footprint
// centre's depth gives a correct painter's order for an orthographic view.
func drawBars(p *painter, cam *Camera, bars []models.Bar, sh shades) {
	depth := make([]float64, len(bars))
	order := make([]int, len(bars))
	for i, b := range bars {
		order[i] = i
		depth[i] = cam.Depth(r3.Vec{X: b.X + 0.5, Y: b.Y + 0.5})
	}
	sort.SliceStable(order, func(i, j int) bool {
		return depth[order[i]] < depth[order[j]]
	})

	// Offset of the camera-facing side along each axis
	sideX, sideY := 0.0, 0.0
	if cam.Facing(r3.Vec{X: 1}) {
		sideX = 1
	}
	if cam.Facing(r3.Vec{Y: 1}) {
		sideY = 1
	}

	quad := make([]point, 4)
	project := func(i int, x, y, z float64) {
		quad[i].X, quad[i].Y = cam.Project(r3.Vec{X: x, Y: y, Z: z})
	}

	for _, i := range order {
		b := bars[i]
		x0, y0, h := b.X, b.Y, b.Height

		if h > 0 {
			// Face perpendicular to x
			fx := x0 + sideX
			project(0, fx, y0, 0)
			project(1, fx, y0+1, 0)
			project(2, fx, y0+1, h)
			project(3, fx, y0, h)
			p.fill(quad, sh.sideX)

			// Face perpendicular to y
			fy := y0 + sideY
			project(0, x0, fy, 0)
			project(1, x0+1, fy, 0)
			project(2, x0+1, fy, h)
			project(3, x0, fy, h)
			p.fill(quad, sh.sideY)
		}

		project(0, x0, y0, h)
		project(1, x0+1, y0, h)
		project(2, x0+1, y0+1, h)
		project(3, x0, y0+1, h)
		p.fill(quad, sh.top)
	}
}

// drawAxisLabels marks the extent of each axis at the box corners
func drawAxisLabels(p *painter, cam *Camera, set models.SampleSet) {
	e := cam.Extent()
	labels := []struct {
		at   r3.Vec
		text string
	}{
		{r3.Vec{}, "0"},
		{r3.Vec{X: e.X}, "x=" + strconv.Itoa(set.Width)},
		{r3.Vec{Y: e.Y}, "y=" + strconv.Itoa(set.Height)},
		{r3.Vec{Z: e.Z}, strconv.FormatFloat(e.Z, 'g', -1, 64)},
	}
	for _, l := range labels {
		x, y := cam.Project(l.at)
		p.text(l.text, int(x)+3, int(y)+4, textColor)
	}
}
