package flow

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Grid is a uniform structured grid. Points are ordered x-major: the point
// (i, j, k) has index (i*NY + j)*NZ + k.
type Grid struct {
	NX, NY, NZ int
	X, Y, Z    []float64
}

// NewGrid spans bounds (xmin, xmax, ymin, ymax, zmin, zmax) with nx, ny, nz
// points per axis, end points included.
func NewGrid(bounds [6]float64, nx, ny, nz int) (*Grid, error) {
	if nx < 2 || ny < 2 || nz < 2 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrBadGrid, nx, ny, nz)
	}
	for a := 0; a < 3; a++ {
		if !(bounds[2*a] < bounds[2*a+1]) {
			return nil, fmt.Errorf("%w: bounds %v", ErrBadGrid, bounds)
		}
	}
	g := &Grid{
		NX: nx, NY: ny, NZ: nz,
		X: make([]float64, nx),
		Y: make([]float64, ny),
		Z: make([]float64, nz),
	}
	span(g.X, bounds[0], bounds[1])
	span(g.Y, bounds[2], bounds[3])
	span(g.Z, bounds[4], bounds[5])
	return g, nil
}

// span fills dst with evenly spaced values from l to u, with the last
// value exactly u.
func span(dst []float64, l, u float64) []float64 {
	floats.Span(dst, l, u)
	dst[len(dst)-1] = u
	return dst
}

func (g *Grid) Len() int { return g.NX * g.NY * g.NZ }

func (g *Grid) Index(i, j, k int) int { return (i*g.NY+j)*g.NZ + k }

func (g *Grid) Point(idx int) r3.Vec {
	k := idx % g.NZ
	j := (idx / g.NZ) % g.NY
	i := idx / (g.NZ * g.NY)
	return r3.Vec{X: g.X[i], Y: g.Y[j], Z: g.Z[k]}
}

// Points returns every grid point in index order.
func (g *Grid) Points() []r3.Vec {
	pts := make([]r3.Vec, 0, g.Len())
	for _, x := range g.X {
		for _, y := range g.Y {
			for _, z := range g.Z {
				pts = append(pts, r3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func (g *Grid) Bounds() [6]float64 {
	return [6]float64{g.X[0], g.X[g.NX-1], g.Y[0], g.Y[g.NY-1], g.Z[0], g.Z[g.NZ-1]}
}

// Contains reports whether p lies in the grid box, faces included.
func (g *Grid) Contains(p r3.Vec) bool {
	b := g.Bounds()
	return p.X >= b[0] && p.X <= b[1] && p.Y >= b[2] && p.Y <= b[3] && p.Z >= b[4] && p.Z <= b[5]
}

// Spacing is the distance between neighbouring points along each axis.
func (g *Grid) Spacing() r3.Vec {
	return r3.Vec{
		X: (g.X[g.NX-1] - g.X[0]) / float64(g.NX-1),
		Y: (g.Y[g.NY-1] - g.Y[0]) / float64(g.NY-1),
		Z: (g.Z[g.NZ-1] - g.Z[0]) / float64(g.NZ-1),
	}
}

// CellLength is the smallest grid spacing; step lengths are measured in it.
func (g *Grid) CellLength() float64 {
	s := g.Spacing()
	return math.Min(s.X, math.Min(s.Y, s.Z))
}

// locate returns the lower cell index along one axis and the fractional
// position inside that cell.
func locate(axis []float64, v float64) (int, float64) {
	n := len(axis)
	h := (axis[n-1] - axis[0]) / float64(n-1)
	f := (v - axis[0]) / h
	i := int(math.Floor(f))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return i, f - float64(i)
}
