package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/windtunnel/internal/dynamo"
)

type blowUp struct{}

func (b *blowUp) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{math.Inf(1)}
}

func (b *blowUp) StateDim() int { return 1 }

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &rotation{}
	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
	if r := x.Norm(); math.Abs(r-1) > 1e-6 {
		t.Errorf("radius drifted to %v", r)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	x, newDt, err := integrator.StepAdaptive(&rotation{}, dynamo.State{1.0, 0.0}, 0, 0.1, 1e-8)

	if err != nil {
		t.Errorf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestRK45_GrowsStepOnLinearField(t *testing.T) {
	integrator := NewRK45()
	x, newDt, err := integrator.StepAdaptive(&uniform{}, dynamo.State{-10, 0, 5}, 0, 0.1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x[0]-(-8)) > 1e-12 {
		t.Errorf("unexpected position %v", x)
	}
	if newDt <= 0.1 {
		t.Errorf("expected step to grow on an exact field, got %v", newDt)
	}
}

func TestRK45_InvalidState(t *testing.T) {
	x0 := dynamo.State{1}
	x, _, err := NewRK45().StepAdaptive(&blowUp{}, x0, 0, 0.1, 1e-6)
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if x[0] != 1 {
		t.Errorf("state should be returned unchanged, got %v", x)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	dyn := &rotation{}

	x4 := dynamo.State{1.0, 0.0}
	x45 := x4.Clone()
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(dyn, x4, float64(i)*dt, dt)
		x45 = rk45.Step(dyn, x45, float64(i)*dt, dt)
	}

	t.Logf("RK4 final: [%.6f, %.6f]", x4[0], x4[1])
	t.Logf("RK45 final: [%.6f, %.6f]", x45[0], x45[1])

	if math.Abs(x45.Norm()-1.0) > math.Abs(x4.Norm()-1.0) {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}
