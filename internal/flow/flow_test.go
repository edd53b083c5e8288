package flow

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

var defaultTunnel = config.Tunnel{Length: 20, Width: 10, Height: 10}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(defaultTunnel.Bounds(), 30, 20, 15)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 9000 {
		t.Errorf("expected 9000 points, got %d", g.Len())
	}
	if g.X[0] != -10 || g.X[29] != 10 || g.Z[0] != 0 || g.Z[14] != 10 {
		t.Errorf("axes do not span the tunnel: x[%v,%v] z[%v,%v]", g.X[0], g.X[29], g.Z[0], g.Z[14])
	}

	idx := g.Index(3, 4, 5)
	if idx != (3*20+4)*15+5 {
		t.Errorf("unexpected index %d", idx)
	}
	p := g.Point(idx)
	if p.X != g.X[3] || p.Y != g.Y[4] || p.Z != g.Z[5] {
		t.Errorf("Point(%d) = %v", idx, p)
	}
	if pts := g.Points(); pts[idx] != p {
		t.Errorf("Points()[%d] = %v, want %v", idx, pts[idx], p)
	}
}

func TestNewGridErrors(t *testing.T) {
	tests := []struct {
		name   string
		bounds [6]float64
		n      int
	}{
		{"single point", defaultTunnel.Bounds(), 1},
		{"flat box", [6]float64{0, 1, 0, 0, 0, 1}, 4},
		{"reversed", [6]float64{1, 0, 0, 1, 0, 1}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.bounds, tt.n, tt.n, tt.n); !errors.Is(err, ErrBadGrid) {
				t.Errorf("expected ErrBadGrid, got %v", err)
			}
		})
	}
}

func TestStreamlineFieldValues(t *testing.T) {
	f, err := StreamlineField(defaultTunnel, 20, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	g := f.Grid
	for _, ijk := range [][3]int{{0, 0, 0}, {15, 10, 7}, {29, 19, 14}} {
		idx := g.Index(ijk[0], ijk[1], ijk[2])
		p := g.Point(idx)
		v := f.Vectors[idx]
		if v.X != 20 {
			t.Errorf("U at %v = %v, want 20", p, v.X)
		}
		if !near(v.Y, 0.15*20*math.Tanh(p.Y), 1e-12) || !near(v.Z, 0.15*20*math.Tanh(p.Z), 1e-12) {
			t.Errorf("cross flow at %v = %v", p, v)
		}
	}
}

func TestStreamlineFieldTurbulenceSeeded(t *testing.T) {
	a, _ := StreamlineField(defaultTunnel, 20, true, rand.New(rand.NewPCG(1, 2)))
	b, _ := StreamlineField(defaultTunnel, 20, true, rand.New(rand.NewPCG(1, 2)))
	calm, _ := StreamlineField(defaultTunnel, 20, false, nil)

	differs := 0
	for i := range a.Vectors {
		if a.Vectors[i] != b.Vectors[i] {
			t.Fatalf("same seed gave different noise at %d", i)
		}
		if a.Vectors[i] != calm.Vectors[i] {
			differs++
		}
	}
	if differs < len(a.Vectors)/2 {
		t.Errorf("turbulence changed only %d of %d vectors", differs, len(a.Vectors))
	}
}

func TestFieldAt(t *testing.T) {
	f, _ := StreamlineField(defaultTunnel, 20, false, nil)

	v, ok := f.At(f.Grid.Point(f.Grid.Index(4, 5, 6)))
	if !ok || v != f.Vectors[f.Grid.Index(4, 5, 6)] {
		t.Errorf("At on a grid point = %v, %v", v, ok)
	}

	mid := r3.Vec{X: 0.1, Y: 0, Z: 5}
	v, ok = f.At(mid)
	if !ok || !near(v.X, 20, 1e-12) {
		t.Errorf("At(%v) = %v, %v", mid, v, ok)
	}

	if _, ok := f.At(r3.Vec{X: 10.5, Y: 0, Z: 5}); ok {
		t.Error("expected ok=false outside the grid")
	}
	if d := f.Derive([]float64{0, 0, -1}, 0); d[0] != 0 || d[1] != 0 || d[2] != 0 {
		t.Errorf("Derive outside grid = %v, want zero", d)
	}
}

func TestInletSeeds(t *testing.T) {
	seeds := InletSeeds(defaultTunnel)
	if len(seeds) != 100 {
		t.Fatalf("expected 100 seeds, got %d", len(seeds))
	}
	for _, s := range seeds {
		if s.X != -10 {
			t.Fatalf("seed off the inlet plane: %v", s)
		}
		if s.Y < -10.0/3-1e-12 || s.Y > 10.0/3+1e-12 || s.Z < 2.5-1e-12 || s.Z > 7.5+1e-12 {
			t.Fatalf("seed outside the seed block: %v", s)
		}
	}
	if seeds[0].Z != 2.5 || seeds[9].Z != 7.5 || seeds[10].Y == seeds[0].Y {
		t.Error("seeds should vary fastest in z")
	}
}

func TestTraceCalmField(t *testing.T) {
	for _, integ := range []string{"rk4", "rk45", "euler"} {
		t.Run(integ, func(t *testing.T) {
			f, _ := StreamlineField(defaultTunnel, 20, false, nil)
			seeds := InletSeeds(defaultTunnel)
			opts := DefaultTraceOptions()
			opts.Integrator = integ

			lines, err := Trace(context.Background(), f, seeds, opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(lines) != len(seeds) {
				t.Fatalf("expected %d lines, got %d", len(seeds), len(lines))
			}
			for i, l := range lines {
				if l.Seed != seeds[i] || l.Points[0] != seeds[i] {
					t.Fatalf("line %d does not start at its seed", i)
				}
				if len(l.Points) < 2 || len(l.Points) > opts.MaxPoints {
					t.Fatalf("line %d has %d points", i, len(l.Points))
				}
				for k := 1; k < len(l.Points); k++ {
					if l.Points[k].X <= l.Points[k-1].X {
						t.Fatalf("line %d not monotone in x at %d", i, k)
					}
					if !f.Grid.Contains(l.Points[k]) {
						t.Fatalf("line %d left the tunnel at %v", i, l.Points[k])
					}
				}
			}
		})
	}
}

func TestTraceStopsAtMaxPoints(t *testing.T) {
	f, _ := StreamlineField(defaultTunnel, 20, false, nil)
	opts := DefaultTraceOptions()
	opts.Integrator = "rk4"
	opts.MaxPoints = 5
	lines, err := Trace(context.Background(), f, InletSeeds(defaultTunnel)[:3], opts)
	if err != nil {
		t.Fatal(err)
	}
	for i, l := range lines {
		if len(l.Points) != 5 {
			t.Errorf("line %d has %d points, want 5", i, len(l.Points))
		}
	}
}

func TestTraceStillField(t *testing.T) {
	f, _ := StreamlineField(defaultTunnel, 0, false, nil)
	lines, err := Trace(context.Background(), f, InletSeeds(defaultTunnel), DefaultTraceOptions())
	if err != nil {
		t.Fatal(err)
	}
	for i, l := range lines {
		if len(l.Points) != 1 {
			t.Fatalf("line %d moved in a still field: %d points", i, len(l.Points))
		}
	}
}

func TestTraceCanceled(t *testing.T) {
	f, _ := StreamlineField(defaultTunnel, 20, false, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lines, err := Trace(ctx, f, InletSeeds(defaultTunnel), DefaultTraceOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if lines != nil {
		t.Error("expected no lines")
	}
}

func TestTraceErrors(t *testing.T) {
	f, _ := StreamlineField(defaultTunnel, 20, false, nil)
	seeds := InletSeeds(defaultTunnel)

	if _, err := Trace(context.Background(), nil, seeds, DefaultTraceOptions()); !errors.Is(err, ErrNilField) {
		t.Errorf("expected ErrNilField, got %v", err)
	}
	if _, err := Trace(context.Background(), f, nil, DefaultTraceOptions()); !errors.Is(err, ErrNoSeeds) {
		t.Errorf("expected ErrNoSeeds, got %v", err)
	}
	opts := DefaultTraceOptions()
	opts.Integrator = "leapfrog"
	if _, err := Trace(context.Background(), f, seeds, opts); err == nil {
		t.Error("expected error for unknown integrator")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Trace(ctx, f, seeds, DefaultTraceOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTunnelPressure(t *testing.T) {
	pv, err := TunnelPressure(defaultTunnel, 20, 1.225)
	if err != nil {
		t.Fatal(err)
	}
	q := 0.5 * 1.225 * 400
	if !near(pv.Max, q, 1e-9) {
		t.Errorf("max = %v, want %v", pv.Max, q)
	}
	if !near(pv.Min, q*math.Exp(-1), 1e-9) {
		t.Errorf("min = %v, want %v", pv.Min, q*math.Exp(-1))
	}
	if pv.Len() == 0 || pv.Len() >= PressureN*PressureN*PressureN {
		t.Fatalf("threshold kept %d points", pv.Len())
	}
	if len(pv.Values) != pv.Len() {
		t.Fatal("points and values differ in length")
	}
	for i, p := range pv.Values {
		if p < pv.Min*1.01 || p > pv.Max {
			t.Fatalf("value %d = %v outside threshold", i, p)
		}
		d := pv.Points[i].X + 10
		if !near(p, q*math.Exp(-d*d/400), 1e-9) {
			t.Fatalf("value %d = %v does not match the decay law", i, p)
		}
	}
}

func TestSurfacePressure(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []r3.Vec{{X: 0}, {X: 1}, {Y: 1}},
		Faces:    [][3]int{{0, 1, 2}},
		Normals:  []r3.Vec{{X: 1}, {Y: 1}, {X: -0.6, Z: 0.8}},
	}
	got := SurfacePressure(m, 10, 2)
	want := []float64{0, 100, 40}
	for i := range want {
		if !near(got[i], want[i], 1e-9) {
			t.Errorf("vertex %d pressure = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSurfacePressureComputesNormals(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []r3.Vec{{X: 0}, {Y: 1}, {Z: 1}, {X: 0, Y: 0.3, Z: 0.3}},
		Faces:    [][3]int{{0, 1, 2}},
	}
	got := SurfacePressure(m, 10, 2)
	if !m.HasNormals() || len(got) != 4 {
		t.Fatalf("normals not computed: %d values", len(got))
	}
	if !near(got[0], 0, 1e-9) {
		t.Errorf("face facing the wind should have zero pressure, got %v", got[0])
	}
}
