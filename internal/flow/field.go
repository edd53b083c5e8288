package flow

import (
	"math"
	"math/rand/v2"

	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Streamline grid resolution and field shape.
const (
	StreamNX = 30
	StreamNY = 20
	StreamNZ = 15

	crossflowGain  = 0.15
	turbulenceGain = 0.2
)

// Field is a steady vector field sampled at the points of a Grid.
type Field struct {
	Grid    *Grid
	Vectors []r3.Vec
}

// StreamlineField samples U = v, V = 0.15 v tanh(y), W = 0.15 v tanh(z) on a
// 30x20x15 grid spanning the tunnel. With turbulence every component of
// every point gets independent 0.2 v N(0,1) noise drawn from rng, or from a
// time-seeded source when rng is nil.
func StreamlineField(t config.Tunnel, velocity float64, turbulence bool, rng *rand.Rand) (*Field, error) {
	g, err := NewGrid(t.Bounds(), StreamNX, StreamNY, StreamNZ)
	if err != nil {
		return nil, err
	}
	if turbulence && rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	vec := make([]r3.Vec, 0, g.Len())
	for range g.X {
		for _, y := range g.Y {
			for _, z := range g.Z {
				v := r3.Vec{
					X: velocity,
					Y: crossflowGain * velocity * math.Tanh(y),
					Z: crossflowGain * velocity * math.Tanh(z),
				}
				if turbulence {
					amp := turbulenceGain * velocity
					v.X += amp * rng.NormFloat64()
					v.Y += amp * rng.NormFloat64()
					v.Z += amp * rng.NormFloat64()
				}
				vec = append(vec, v)
			}
		}
	}
	return &Field{Grid: g, Vectors: vec}, nil
}

// At interpolates the field trilinearly. ok is false outside the grid.
func (f *Field) At(p r3.Vec) (r3.Vec, bool) {
	g := f.Grid
	if !g.Contains(p) {
		return r3.Vec{}, false
	}
	i, fx := locate(g.X, p.X)
	j, fy := locate(g.Y, p.Y)
	k, fz := locate(g.Z, p.Z)

	var out r3.Vec
	for di := 0; di < 2; di++ {
		wx := 1 - fx
		if di == 1 {
			wx = fx
		}
		for dj := 0; dj < 2; dj++ {
			wy := 1 - fy
			if dj == 1 {
				wy = fy
			}
			for dk := 0; dk < 2; dk++ {
				wz := 1 - fz
				if dk == 1 {
					wz = fz
				}
				w := wx * wy * wz
				if w == 0 {
					continue
				}
				out = r3.Add(out, r3.Scale(w, f.Vectors[g.Index(i+di, j+dj, k+dk)]))
			}
		}
	}
	return out, true
}

// Derive makes Field a dynamo.System. The field is zero outside the grid.
func (f *Field) Derive(x dynamo.State, t float64) dynamo.State {
	v, _ := f.At(r3.Vec{X: x[0], Y: x[1], Z: x[2]})
	return dynamo.State{v.X, v.Y, v.Z}
}

func (f *Field) StateDim() int { return 3 }

// MaxSpeed is the largest vector magnitude at the grid points.
func (f *Field) MaxSpeed() float64 {
	m := 0.0
	for _, v := range f.Vectors {
		m = math.Max(m, r3.Norm(v))
	}
	return m
}
