package aero

import (
	"fmt"
	"math"
)

// MaxSamples caps the length of a sweep.
const MaxSamples = 1_000_000

// Range is the velocity range of a sweep, end inclusive.
type Range struct {
	Start float64
	End   float64
	Step  float64
}

// DefaultRange is 0..30 m/s in 0.1 m/s steps.
var DefaultRange = Range{Start: 0.0, End: 30.0, Step: 0.1}

func (r Range) Validate() error {
	for _, v := range []float64{r.Start, r.End, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidRange
		}
	}
	if r.Step <= 0 || r.Start >= r.End {
		return ErrInvalidRange
	}
	if r.Count() > MaxSamples {
		return fmt.Errorf("%w: %d", ErrTooManySamples, r.Count())
	}
	return nil
}

// Count is the number of samples in [Start, End+Step/2) spaced by Step.
func (r Range) Count() int {
	if r.Step <= 0 || r.Start >= r.End {
		return 0
	}
	return int(math.Ceil((r.End + r.Step/2 - r.Start) / r.Step))
}

// Velocities returns start + i*step for each sample. The final sample is
// snapped to End when it only differs by accumulated rounding.
func (r Range) Velocities() []float64 {
	n := r.Count()
	vs := make([]float64, n)
	for i := range vs {
		vs[i] = r.Start + float64(i)*r.Step
	}
	if n > 0 && math.Abs(vs[n-1]-r.End) <= r.Step*1e-6 {
		vs[n-1] = r.End
	}
	return vs
}

// SweepResult holds parallel slices, one entry per velocity sample.
type SweepResult struct {
	Velocities []float64 `json:"velocities"`
	DragForces []float64 `json:"drag_forces"`
	Powers     []float64 `json:"powers"`
}

func (s *SweepResult) Len() int { return len(s.Velocities) }

// Sweep evaluates drag and power at every velocity of r.
func Sweep(r Range, density, area, cd float64) (*SweepResult, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	vs := r.Velocities()
	res := &SweepResult{
		Velocities: vs,
		DragForces: make([]float64, len(vs)),
		Powers:     make([]float64, len(vs)),
	}
	for i, v := range vs {
		d := Drag(density, v, area, cd)
		res.DragForces[i] = d
		res.Powers[i] = Power(d, v)
	}
	return res, nil
}
