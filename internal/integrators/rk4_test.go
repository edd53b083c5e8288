package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/windtunnel/internal/dynamo"
)

// rotation is the planar field (y, -x); paths are circles.
type rotation struct{}

func (r *rotation) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (r *rotation) StateDim() int { return 2 }

// uniform moves every point along +x at speed 20.
type uniform struct{}

func (u *uniform) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{20, 0, 0}
}

func (u *uniform) StateDim() int { return 3 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &rotation{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("x error too large: got %.6f, expected %.6f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("y error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4DoesNotAliasInput(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{-10, 0, 5}
	next := integ.Step(&uniform{}, x, 0, 0.1)

	if x[0] != -10 {
		t.Errorf("input modified: %v", x)
	}
	if math.Abs(next[0]-(-8)) > 1e-12 || next[1] != 0 || next[2] != 5 {
		t.Errorf("unexpected step result %v", next)
	}
}

func TestEulerStep(t *testing.T) {
	x := NewEuler().Step(&uniform{}, dynamo.State{0, 1, 2}, 0, 0.5)
	if x[0] != 10 || x[1] != 1 || x[2] != 2 {
		t.Errorf("unexpected Euler step %v", x)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"euler", false},
		{"rk4", false},
		{"rk45", false},
		{"verlet", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := New(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && integ == nil {
				t.Error("nil integrator")
			}
		})
	}
}
