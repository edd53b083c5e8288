package mesh

import "gonum.org/v1/gonum/spatial/r3"

// FaceNormal is the unnormalised normal of face i; its length is twice the area.
func (m *Mesh) FaceNormal(i int) r3.Vec {
	t := m.Triangle(i)
	return r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
}

// ComputeNormals sets area-weighted unit vertex normals. Each normal is
// flipped, if needed, to point away from the mesh centroid.
func (m *Mesh) ComputeNormals() {
	normals := make([]r3.Vec, len(m.Vertices))
	for i, f := range m.Faces {
		n := m.FaceNormal(i)
		for _, vi := range f {
			normals[vi] = r3.Add(normals[vi], n)
		}
	}
	c := m.Centroid()
	for i, n := range normals {
		if r3.Norm(n) == 0 {
			continue
		}
		n = r3.Unit(n)
		if r3.Dot(n, r3.Sub(m.Vertices[i], c)) < 0 {
			n = r3.Scale(-1, n)
		}
		normals[i] = n
	}
	m.Normals = normals
}
