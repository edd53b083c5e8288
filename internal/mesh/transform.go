package mesh

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

func (m *Mesh) Translate(d r3.Vec) {
	for i := range m.Vertices {
		m.Vertices[i] = r3.Add(m.Vertices[i], d)
	}
}

// Scale multiplies coordinates about the origin. Normals are recomputed
// when present since non-uniform scaling does not preserve them.
func (m *Mesh) Scale(sx, sy, sz float64) {
	for i, v := range m.Vertices {
		m.Vertices[i] = r3.Vec{X: v.X * sx, Y: v.Y * sy, Z: v.Z * sz}
	}
	if m.Normals != nil {
		m.ComputeNormals()
	}
}

// Rotate turns the mesh by deg degrees about the x, y or z axis through the origin.
func (m *Mesh) Rotate(axis string, deg float64) error {
	var dir r3.Vec
	switch strings.ToLower(axis) {
	case "x":
		dir = r3.Vec{X: 1}
	case "y":
		dir = r3.Vec{Y: 1}
	case "z":
		dir = r3.Vec{Z: 1}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAxis, axis)
	}
	rot := r3.NewRotation(deg*math.Pi/180, dir)
	for i, v := range m.Vertices {
		m.Vertices[i] = rot.Rotate(v)
	}
	for i, n := range m.Normals {
		m.Normals[i] = rot.Rotate(n)
	}
	return nil
}

// CenterAndPlace centres the mesh on the origin in x and y and rests it on z = 0.
func (m *Mesh) CenterAndPlace() {
	b := m.Bounds()
	m.Translate(r3.Vec{
		X: -(b[0] + b[1]) / 2,
		Y: -(b[2] + b[3]) / 2,
		Z: -b[4],
	})
}
