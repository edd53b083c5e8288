// Package mesh holds a triangulated surface loaded from STL and the in-place
// transforms applied to it inside the tunnel.
package mesh

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Normals, when present, are per vertex.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
	Normals  []r3.Vec
}

func (m *Mesh) NumTriangles() int { return len(m.Faces) }
func (m *Mesh) NumVertices() int  { return len(m.Vertices) }
func (m *Mesh) HasNormals() bool  { return len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0 }

func (m *Mesh) Copy() *Mesh {
	c := &Mesh{
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Faces, m.Faces)
	if m.Normals != nil {
		c.Normals = make([]r3.Vec, len(m.Normals))
		copy(c.Normals, m.Normals)
	}
	return c
}

// Bounds returns xmin, xmax, ymin, ymax, zmin, zmax. An empty mesh gives zeros.
func (m *Mesh) Bounds() [6]float64 {
	if len(m.Vertices) == 0 {
		return [6]float64{}
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return [6]float64{lo.X, hi.X, lo.Y, hi.Y, lo.Z, hi.Z}
}

// Extent is the size of the bounding box along each axis.
func (m *Mesh) Extent() r3.Vec {
	b := m.Bounds()
	return r3.Vec{X: b[1] - b[0], Y: b[3] - b[2], Z: b[5] - b[4]}
}

// Centroid is the mean of the vertices.
func (m *Mesh) Centroid() r3.Vec {
	var c r3.Vec
	if len(m.Vertices) == 0 {
		return c
	}
	for _, v := range m.Vertices {
		c = r3.Add(c, v)
	}
	return r3.Scale(1/float64(len(m.Vertices)), c)
}

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) [3]r3.Vec {
	f := m.Faces[i]
	return [3]r3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

func (m *Mesh) String() string {
	b := m.Bounds()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d triangles, %d vertices\n", m.NumTriangles(), m.NumVertices())
	fmt.Fprintf(&sb, "bounds x[%.3f, %.3f] y[%.3f, %.3f] z[%.3f, %.3f]", b[0], b[1], b[2], b[3], b[4], b[5])
	return sb.String()
}
