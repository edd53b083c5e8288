package flow

import (
	"math"

	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	PressureN = 20

	// lower cut of the volume relative to its minimum
	thresholdFactor = 1.01
)

// PressureVolume is the thresholded tunnel pressure. Min and Max span the
// whole grid before thresholding and fix the colour scale.
type PressureVolume struct {
	Points []r3.Vec
	Values []float64
	Min    float64
	Max    float64
}

func (pv *PressureVolume) Len() int { return len(pv.Points) }

// TunnelPressure evaluates p = 0.5 rho v^2 exp(-d^2/L^2), d = x + L/2, on a
// 20^3 grid over the tunnel and keeps the points with p in [1.01 min, max].
func TunnelPressure(t config.Tunnel, velocity, density float64) (*PressureVolume, error) {
	g, err := NewGrid(t.Bounds(), PressureN, PressureN, PressureN)
	if err != nil {
		return nil, err
	}
	q := DynamicPressure(density, velocity)
	values := make([]float64, g.Len())
	lo, hi := math.Inf(1), math.Inf(-1)
	for idx := range values {
		d := g.Point(idx).X + t.Length/2
		p := q * math.Exp(-(d*d)/(t.Length*t.Length))
		values[idx] = p
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}

	pv := &PressureVolume{Min: lo, Max: hi}
	cut := lo * thresholdFactor
	for idx, p := range values {
		if p >= cut && p <= hi {
			pv.Points = append(pv.Points, g.Point(idx))
			pv.Values = append(pv.Values, p)
		}
	}
	return pv, nil
}

// DynamicPressure is 0.5 rho v^2.
func DynamicPressure(density, velocity float64) float64 {
	return 0.5 * density * velocity * velocity
}

// SurfacePressure estimates pressure at each vertex as
// 0.5 rho v^2 (1 - |n . x|), x being the flow direction. Normals are
// computed first when the mesh has none.
func SurfacePressure(m *mesh.Mesh, velocity, density float64) []float64 {
	if !m.HasNormals() {
		m.ComputeNormals()
	}
	q := DynamicPressure(density, velocity)
	wind := r3.Vec{X: 1}
	out := make([]float64, len(m.Vertices))
	for i, n := range m.Normals {
		out[i] = q * (1 - math.Abs(r3.Dot(n, wind)))
	}
	return out
}
