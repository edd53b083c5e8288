package tunnel

import (
	"fmt"

	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/logging"
	"github.com/san-kum/windtunnel/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ApplyTunnel replaces the tunnel dimensions. A stale pressure volume is
// dropped since it was sampled over the old box.
func (s *Session) ApplyTunnel(t config.Tunnel) error {
	if err := t.Validate(); err != nil {
		return s.fail("Error updating tunnel", err)
	}
	s.Config.Tunnel = t
	s.Pressure = nil
	s.Camera.Fit(t.Bounds())
	s.ok(fmt.Sprintf("Tunnel: %g x %g x %g m", t.Length, t.Width, t.Height))
	return nil
}

// LoadSTL reads an STL file, centres it on the tunnel floor and keeps a
// pristine copy for ResetObject.
func (s *Session) LoadSTL(path string) error {
	if path == "" {
		return s.fail("Load STL error", ErrNoPath)
	}
	m, err := mesh.LoadSTL(path)
	if err != nil {
		return s.fail("Load STL error", err)
	}
	m.ComputeNormals()
	m.CenterAndPlace()

	s.Object = m
	s.original = m.Copy()
	s.MeshPath = path
	s.Config.ObjectPosition = [3]float64{}
	s.SurfacePressure = nil
	s.ok(fmt.Sprintf("Loaded %s: %d triangles", path, m.NumTriangles()),
		logging.F("triangles", m.NumTriangles()), logging.F("vertices", m.NumVertices()))
	return nil
}

// SetObject installs an in-memory mesh the same way LoadSTL does.
func (s *Session) SetObject(m *mesh.Mesh) {
	m.ComputeNormals()
	m.CenterAndPlace()
	s.Object = m
	s.original = m.Copy()
	s.MeshPath = ""
	s.Config.ObjectPosition = [3]float64{}
	s.SurfacePressure = nil
}

func (s *Session) ResetObject() error {
	if s.Object == nil || s.original == nil {
		return s.fail("Reset error", ErrNoObject)
	}
	s.Object = s.original.Copy()
	s.Object.CenterAndPlace()
	s.Config.ObjectPosition = [3]float64{}
	s.SurfacePressure = nil
	s.ok("Object reset to original position.")
	return nil
}

// Move shifts the object by d. Only the tracked position is bounds checked,
// not the object's extent.
func (s *Session) Move(d r3.Vec) error {
	if s.Object == nil {
		return s.fail("Move error", ErrNoObject)
	}
	p := s.Config.ObjectPosition
	next := [3]float64{p[0] + d.X, p[1] + d.Y, p[2] + d.Z}
	if !s.Config.Tunnel.Contains(next) {
		s.Status = "Movement blocked: Object would exit tunnel bounds"
		s.log.Info("move blocked", logging.F("position", next))
		return ErrOutOfBounds
	}
	s.Object.Translate(d)
	s.Config.ObjectPosition = next
	s.ok(fmt.Sprintf("Object position: [%g, %g, %g]", next[0], next[1], next[2]))
	return nil
}

// Step moves the object MoveStep along one axis; sign picks the direction.
func (s *Session) Step(axis string, sign float64) error {
	var d r3.Vec
	switch axis {
	case "x":
		d.X = sign * s.MoveStep
	case "y":
		d.Y = sign * s.MoveStep
	case "z":
		d.Z = sign * s.MoveStep
	default:
		return s.fail("Move error", fmt.Errorf("%w: %q", mesh.ErrUnknownAxis, axis))
	}
	return s.Move(d)
}

// Rotate turns the object about an axis through the origin.
func (s *Session) Rotate(axis string, deg float64) error {
	if s.Object == nil {
		return s.fail("Rotate error", ErrNoObject)
	}
	if err := s.Object.Rotate(axis, deg); err != nil {
		return s.fail("Rotate error", err)
	}
	s.SurfacePressure = nil
	s.ok(fmt.Sprintf("Rotated %g° about %s", deg, axis))
	return nil
}

// ApplyScale multiplies the object by the configured scale factors. Each
// call compounds on the current geometry.
func (s *Session) ApplyScale() error {
	if s.Object == nil {
		s.Status = "No STL object loaded to scale."
		s.log.Info("scale without object")
		return ErrNoObject
	}
	sc := s.Config.Scale
	if sc.X <= 0 || sc.Y <= 0 || sc.Z <= 0 {
		return s.fail("Scale error", fmt.Errorf("%w: scale factors must be positive", config.ErrInvalid))
	}
	s.Object.Scale(sc.X, sc.Y, sc.Z)
	s.SurfacePressure = nil
	s.ok(fmt.Sprintf("Scaled by %g, %g, %g", sc.X, sc.Y, sc.Z))
	return nil
}
