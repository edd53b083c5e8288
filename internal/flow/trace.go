package flow

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/windtunnel/internal/config"
	"github.com/san-kum/windtunnel/internal/dynamo"
	"github.com/san-kum/windtunnel/internal/integrators"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	SeedsPerAxis = 10

	DefaultMaxPoints     = 1000
	DefaultInitialStep   = 0.1
	DefaultMinStep       = 0.01
	DefaultMaxStep       = 1.0
	DefaultMaxLength     = 1000.0
	DefaultTerminalSpeed = 1e-5
)

// TraceOptions control streamline integration. Step lengths are in units
// of the grid cell length; MaxLength is in metres of arc.
type TraceOptions struct {
	Integrator    string
	MaxPoints     int
	InitialStep   float64
	MinStep       float64
	MaxStep       float64
	MaxLength     float64
	TerminalSpeed float64
	Tolerance     float64
	Workers       int
}

func DefaultTraceOptions() TraceOptions {
	return TraceOptions{
		Integrator:    "rk45",
		MaxPoints:     DefaultMaxPoints,
		InitialStep:   DefaultInitialStep,
		MinStep:       DefaultMinStep,
		MaxStep:       DefaultMaxStep,
		MaxLength:     DefaultMaxLength,
		TerminalSpeed: DefaultTerminalSpeed,
		Tolerance:     1e-6,
	}
}

// Streamline is one traced path, starting at its seed.
type Streamline struct {
	Seed   r3.Vec
	Points []r3.Vec
}

// Length is the arc length of the polyline.
func (s Streamline) Length() float64 {
	l := 0.0
	for i := 1; i < len(s.Points); i++ {
		l += r3.Norm(r3.Sub(s.Points[i], s.Points[i-1]))
	}
	return l
}

// InletSeeds places a 10x10 block of seeds on the inlet plane x = -L/2,
// covering y in [-W/3, W/3] and z in [H/4, 3H/4]. Seeds vary fastest in z.
func InletSeeds(t config.Tunnel) []r3.Vec {
	ys := make([]float64, SeedsPerAxis)
	zs := make([]float64, SeedsPerAxis)
	span(ys, -t.Width/3, t.Width/3)
	span(zs, t.Height/4, 3*t.Height/4)

	seeds := make([]r3.Vec, 0, SeedsPerAxis*SeedsPerAxis)
	for _, y := range ys {
		for _, z := range zs {
			seeds = append(seeds, r3.Vec{X: -t.Length / 2, Y: y, Z: z})
		}
	}
	return seeds
}

// unitSpeed reparameterises a field by arc length so that a step of h
// advances a path by roughly h metres whatever the local speed.
type unitSpeed struct {
	f        *Field
	terminal float64
}

func (u unitSpeed) Derive(x dynamo.State, t float64) dynamo.State {
	v, ok := u.f.At(r3.Vec{X: x[0], Y: x[1], Z: x[2]})
	n := r3.Norm(v)
	if !ok || n < u.terminal {
		return dynamo.State{0, 0, 0}
	}
	return dynamo.State{v.X / n, v.Y / n, v.Z / n}
}

func (u unitSpeed) StateDim() int { return 3 }

// Trace integrates forward from every seed. Seeds are traced concurrently;
// the result has one streamline per seed in seed order. A path ends when it
// reaches MaxPoints or MaxLength, leaves the grid, slows below
// TerminalSpeed or the state turns invalid. Seeds outside the grid give
// paths holding only the seed.
func Trace(ctx context.Context, f *Field, seeds []r3.Vec, opts TraceOptions) ([]Streamline, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	if _, err := integrators.New(opts.Integrator); err != nil {
		return nil, err
	}
	if opts.MaxPoints < 1 {
		return nil, fmt.Errorf("flow: max points must be positive, got %d", opts.MaxPoints)
	}
	if !(opts.InitialStep > 0) {
		return nil, fmt.Errorf("flow: initial step must be positive, got %g", opts.InitialStep)
	}

	lines := make([]Streamline, len(seeds))
	err := dynamo.ForEach(ctx, len(seeds), opts.Workers, func(ctx context.Context, i int) error {
		integ, _ := integrators.New(opts.Integrator)
		line, err := traceOne(ctx, f, integ, seeds[i], opts)
		if err != nil {
			return err
		}
		lines[i] = line
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func traceOne(ctx context.Context, f *Field, integ dynamo.Integrator, seed r3.Vec, opts TraceOptions) (Streamline, error) {
	line := Streamline{Seed: seed, Points: []r3.Vec{seed}}
	if !f.Grid.Contains(seed) {
		return line, nil
	}

	cell := f.Grid.CellLength()
	h := opts.InitialStep * cell
	hMin, hMax := stepLimits(opts, cell, h)
	sys := unitSpeed{f: f, terminal: opts.TerminalSpeed}
	adaptive, isAdaptive := integ.(dynamo.AdaptiveIntegrator)

	x := dynamo.State{seed.X, seed.Y, seed.Z}
	s := 0.0
	for len(line.Points) < opts.MaxPoints {
		if len(line.Points)%64 == 0 {
			if err := ctx.Err(); err != nil {
				return line, err
			}
		}
		v, ok := f.At(r3.Vec{X: x[0], Y: x[1], Z: x[2]})
		if !ok || r3.Norm(v) < opts.TerminalSpeed {
			break
		}
		if opts.MaxLength > 0 && s >= opts.MaxLength {
			break
		}

		var next dynamo.State
		taken := h
		if isAdaptive {
			var hNext float64
			var err error
			next, hNext, err = adaptive.StepAdaptive(sys, x, s, h, opts.Tolerance)
			if errors.Is(err, dynamo.ErrInvalidState) {
				break
			}
			h = math.Max(hMin, math.Min(hMax, hNext))
		} else {
			next = integ.Step(sys, x, s, h)
		}
		if !next.IsValid() {
			break
		}
		p := r3.Vec{X: next[0], Y: next[1], Z: next[2]}
		if !f.Grid.Contains(p) {
			break
		}
		s += taken
		x = next
		line.Points = append(line.Points, p)
	}
	return line, nil
}

func stepLimits(opts TraceOptions, cell, h float64) (float64, float64) {
	lo, hi := opts.MinStep*cell, opts.MaxStep*cell
	if !(lo > 0) || lo > h {
		lo = h
	}
	if !(hi > 0) || hi < h {
		hi = h
	}
	return lo, hi
}
