// Package stl exports bar charts as binary STL meshes so that a channel's
// chart can be inspected in any 3D viewer or printed.
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"channelhist/internal/models"
)

// Triangle is one facet of an STL mesh
type Triangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

// BarMesher turns chart bars into closed box meshes
type BarMesher struct {
	bars []models.Bar

	// scale factors applied to output coordinates
	xScale, yScale, zScale float32
}

// NewBarMesher creates a mesher for the given bars with unit scale
func NewBarMesher(bars []models.Bar) *BarMesher {
	return &BarMesher{
		bars:   bars,
		xScale: 1,
		yScale: 1,
		zScale: 1,
	}
}

// SetScale sets the scale applied to each axis of the generated mesh.
// A z scale below 1 keeps 0..255 heights printable next to small images.
func (m *BarMesher) SetScale(x, y, z float32) {
	m.xScale = x
	m.yScale = y
	m.zScale = z
}

// box face definitions: outward normal and the four corner indices in
// counter-clockwise order seen from outside. Corner i has x=i&1, y=i>>1&1, z=i>>2&1.
var boxFaces = [6]struct {
	normal  [3]float32
	corners [4]int
}{
	{[3]float32{0, 0, -1}, [4]int{0, 2, 3, 1}},
	{[3]float32{0, 0, 1}, [4]int{4, 5, 7, 6}},
	{[3]float32{-1, 0, 0}, [4]int{0, 4, 6, 2}},
	{[3]float32{1, 0, 0}, [4]int{1, 3, 7, 5}},
	{[3]float32{0, -1, 0}, [4]int{0, 1, 5, 4}},
	{[3]float32{0, 1, 0}, [4]int{2, 6, 7, 3}},
}

// GenerateTriangles returns twelve triangles per bar. Bars of zero height
// have no volume and are skipped.
func (m *BarMesher) GenerateTriangles() []Triangle {
	triangles := make([]Triangle, 0, len(m.bars)*12)

	for _, bar := range m.bars {
		if bar.Height <= 0 {
			continue
		}

		var corners [8][3]float32
		for i := range corners {
			corners[i] = [3]float32{
				(float32(bar.X) + float32(i&1)) * m.xScale,
				(float32(bar.Y) + float32(i>>1&1)) * m.yScale,
				float32(bar.Height) * float32(i>>2&1) * m.zScale,
			}
		}

		for _, face := range boxFaces {
			a, b, c, d := corners[face.corners[0]], corners[face.corners[1]],
				corners[face.corners[2]], corners[face.corners[3]]
			triangles = append(triangles,
				Triangle{Normal: face.normal, Vertex1: a, Vertex2: b, Vertex3: c},
				Triangle{Normal: face.normal, Vertex1: a, Vertex2: c, Vertex3: d},
			)
		}
	}

	return triangles
}

// WriteSTL writes triangles in binary STL format
func WriteSTL(w io.Writer, header string, triangles []Triangle) error {
	var head [80]byte
	copy(head[:], header)
	if _, err := w.Write(head[:]); err != nil {
		return fmt.Errorf("error writing STL header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return fmt.Errorf("error writing triangle count: %w", err)
	}

	// Normal, three vertices and a zero attribute byte count per facet
	var facet [50]byte
	for _, t := range triangles {
		off := 0
		for _, v := range [4][3]float32{t.Normal, t.Vertex1, t.Vertex2, t.Vertex3} {
			for _, f := range v {
				binary.LittleEndian.PutUint32(facet[off:], math.Float32bits(f))
				off += 4
			}
		}
		if _, err := w.Write(facet[:]); err != nil {
			return fmt.Errorf("error writing triangle: %w", err)
		}
	}

	return nil
}

// SaveToSTL saves triangles to a binary STL file
func SaveToSTL(filename string, triangles []Triangle) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating STL file: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if err := WriteSTL(buf, "channelhist bar chart", triangles); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("error flushing STL file: %w", err)
	}

	return nil
}

// ReadSTL reads a binary STL stream written by WriteSTL
func ReadSTL(r io.Reader) ([]Triangle, error) {
	var head [80]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("error reading STL header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("error reading triangle count: %w", err)
	}

	// The count comes from the file, so grow instead of trusting it up front
	triangles := make([]Triangle, 0, min(count, 1<<16))
	var facet struct {
		Vectors [4][3]float32
		Attr    uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("error reading triangle %d: %w", i, err)
		}
		triangles = append(triangles, Triangle{
			Normal:  facet.Vectors[0],
			Vertex1: facet.Vectors[1],
			Vertex2: facet.Vectors[2],
			Vertex3: facet.Vectors[3],
		})
	}

	return triangles, nil
}
