package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// point is a pixel-space vertex
type point struct {
	X, Y float64
}

// painter fills polygons into an RGBA image. A single rasterizer is reused
// and sized to each polygon's clipped bounding box.
type painter struct {
	dst *image.RGBA
	z   vector.Rasterizer
}

func newPainter(dst *image.RGBA) *painter {
	return &painter{dst: dst}
}

// fill paints the closed polygon pts with a solid colour
func (p *painter) fill(pts []point, col color.Color) {
	if len(pts) < 3 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range pts {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}

	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(p.dst.Bounds())
	if r.Empty() {
		return
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	p.z.Reset(r.Dx(), r.Dy())
	p.z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, pt := range pts[1:] {
		p.z.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
	}
	p.z.ClosePath()
	p.z.Draw(p.dst, r, image.NewUniform(col), image.Point{})
}

// line strokes a segment of the given pixel width
func (p *painter) line(a, b point, width float64, col color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	p.fill([]point{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}, col)
}

// text draws s with its baseline starting at (x, y)
func (p *painter) text(s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth returns the advance of s in pixels
func textWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}
