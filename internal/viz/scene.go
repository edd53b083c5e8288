package viz

import (
	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/flow"
	"github.com/san-kum/windtunnel/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxObjectEdges caps the triangles drawn for large meshes; faces are
// sampled evenly above it.
const MaxObjectEdges = 6000

// Scene is everything drawn inside the tunnel. Nil parts are skipped.
type Scene struct {
	Tunnel          config.Tunnel
	Object          *mesh.Mesh
	SurfacePressure []float64
	Streamlines     []flow.Streamline
	Pressure        *flow.PressureVolume
}

// Wireframe builds the scene geometry in world coordinates.
func (s *Scene) Wireframe() *Wireframe {
	w := NewWireframe()
	w.AddBox(s.Tunnel.Bounds(), LayerTunnel)

	// wind arrow above the inlet, pointing downstream
	l, h := s.Tunnel.Length, s.Tunnel.Height
	a := r3.Vec{X: -l / 2, Z: h * 1.1}
	w.AddArrow(a, r3.Add(a, r3.Vec{X: l / 4}), LayerWind)

	if s.Pressure != nil {
		mid := (s.Pressure.Min + s.Pressure.Max) / 2
		for i, p := range s.Pressure.Points {
			layer := LayerPressureLow
			if s.Pressure.Values[i] >= mid {
				layer = LayerPressureHigh
			}
			w.AddPoint(p, layer)
		}
	}

	for _, line := range s.Streamlines {
		for i := 1; i < len(line.Points); i++ {
			w.AddEdge(line.Points[i-1], line.Points[i], LayerStream)
		}
	}

	if s.Object != nil {
		s.addObject(w)
	}
	return w
}

func (s *Scene) addObject(w *Wireframe) {
	m := s.Object
	n := m.NumTriangles()
	stride := 1
	if n > MaxObjectEdges {
		stride = (n + MaxObjectEdges - 1) / MaxObjectEdges
	}

	hot := 0.0
	usePressure := len(s.SurfacePressure) == m.NumVertices()
	if usePressure {
		for _, p := range s.SurfacePressure {
			if p > hot {
				hot = p
			}
		}
		hot /= 2
	}

	for i := 0; i < n; i += stride {
		f := m.Faces[i]
		t := m.Triangle(i)
		layer := LayerObject
		if usePressure && hot > 0 {
			mean := (s.SurfacePressure[f[0]] + s.SurfacePressure[f[1]] + s.SurfacePressure[f[2]]) / 3
			if mean >= hot {
				layer = LayerObjectHot
			}
		}
		w.AddEdge(t[0], t[1], layer)
		w.AddEdge(t[1], t[2], layer)
		w.AddEdge(t[2], t[0], layer)
	}
}

// Draw clears c and renders the scene through cam.
func (s *Scene) Draw(c *Canvas, cam *Camera) {
	c.Clear()
	Render3D(c, s.Wireframe(), cam)
}
