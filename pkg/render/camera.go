package render

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// boxAspect is the relative size of the plot box along x, y and z
var boxAspect = r3.Vec{X: 1, Y: 1, Z: 0.75}

// Camera maps data coordinates of one chart to pixel coordinates of its panel
// using an orthographic view from the given elevation and azimuth.
type Camera struct {
	// rot has the screen right, screen up and eye direction as its rows
	rot *mat.Dense

	// rows of rot, cached for the per-vertex hot path
	right, up, eye r3.Vec

	// extent is the data-space size of the plot box
	extent r3.Vec

	// screen mapping
	scale      float64
	minX, minY float64
	originX    float64
	originY    float64
}

// ViewMatrix returns the rotation taking normalized box coordinates into view
// space for a camera at elevation el and azimuth az, both in degrees.
func ViewMatrix(el, az float64) *mat.Dense {
	e := el * math.Pi / 180
	a := az * math.Pi / 180
	sinE, cosE := math.Sincos(e)
	sinA, cosA := math.Sincos(a)

	return mat.NewDense(3, 3, []float64{
		-sinA, cosA, 0,
		-sinE * cosA, -sinE * sinA, cosE,
		cosE * cosA, cosE * sinA, sinE,
	})
}

// NewCamera creates a camera for a box of the given data extent, fitted into
// a viewport of width × height pixels whose bottom-left corner is (originX, originY).
func NewCamera(extent r3.Vec, el, az float64, originX, originY, width, height float64) *Camera {
	if extent.X <= 0 {
		extent.X = 1
	}
	if extent.Y <= 0 {
		extent.Y = 1
	}
	if extent.Z <= 0 {
		extent.Z = 1
	}

	rot := ViewMatrix(el, az)
	c := &Camera{
		rot:    rot,
		right:  rowVec(rot, 0),
		up:     rowVec(rot, 1),
		eye:    rowVec(rot, 2),
		extent: extent,
		scale:  1,
	}

	// Fit the projected box corners into the viewport
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range c.BoxCorners() {
		sx, sy := c.view(corner)
		minX = math.Min(minX, sx)
		minY = math.Min(minY, sy)
		maxX = math.Max(maxX, sx)
		maxY = math.Max(maxY, sy)
	}

	c.minX, c.minY = minX, minY
	spanX, spanY := maxX-minX, maxY-minY
	c.scale = math.Min(width/spanX, height/spanY)

	// Center the box in the viewport
	c.originX = originX + (width-spanX*c.scale)/2
	c.originY = originY - (height-spanY*c.scale)/2

	return c
}

func rowVec(m *mat.Dense, i int) r3.Vec {
	row := mat.Row(nil, i, m)
	return r3.Vec{X: row[0], Y: row[1], Z: row[2]}
}

// BoxCorners returns the eight corners of the data box
func (c *Camera) BoxCorners() [8]r3.Vec {
	var corners [8]r3.Vec
	for i := range corners {
		corners[i] = r3.Vec{
			X: float64(i&1) * c.extent.X,
			Y: float64(i>>1&1) * c.extent.Y,
			Z: float64(i>>2&1) * c.extent.Z,
		}
	}
	return corners
}

// normalize maps data coordinates into the unit box centered at the origin
func (c *Camera) normalize(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: (p.X/c.extent.X - 0.5) * boxAspect.X,
		Y: (p.Y/c.extent.Y - 0.5) * boxAspect.Y,
		Z: (p.Z/c.extent.Z - 0.5) * boxAspect.Z,
	}
}

// view returns the screen-plane coordinates of p before the pixel mapping
func (c *Camera) view(p r3.Vec) (float64, float64) {
	n := c.normalize(p)
	return r3.Dot(c.right, n), r3.Dot(c.up, n)
}

// Project returns the pixel position of data point p
func (c *Camera) Project(p r3.Vec) (float64, float64) {
	sx, sy := c.view(p)
	return c.originX + (sx-c.minX)*c.scale, c.originY - (sy-c.minY)*c.scale
}

// Depth returns how close p is to the eye; larger values are nearer
func (c *Camera) Depth(p r3.Vec) float64 {
	return r3.Dot(c.eye, c.normalize(p))
}

// Facing reports whether a face with outward normal n is turned toward the eye
func (c *Camera) Facing(n r3.Vec) bool {
	return r3.Dot(c.eye, n) > 0
}

// Eye returns the unit vector pointing from the box toward the viewer
func (c *Camera) Eye() r3.Vec {
	return c.eye
}

// Extent returns the data-space size of the plot box
func (c *Camera) Extent() r3.Vec {
	return c.extent
}
