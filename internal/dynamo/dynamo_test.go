package dynamo

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

type line struct{}

func (line) Derive(x State, t float64) State { return State{1, 0} }
func (line) StateDim() int                   { return 2 }

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"finite", State{1, 2, 3}, true},
		{"empty", State{}, true},
		{"nan", State{1, math.NaN()}, false},
		{"inf", State{math.Inf(-1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateCloneIndependent(t *testing.T) {
	s := State{1, 2}
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("clone shares storage")
	}
	if n := (State{3, 4}).Norm(); n != 5 {
		t.Errorf("Norm = %v, want 5", n)
	}
	if d := (State{3, 4}).Sub(State{1, 1}); d[0] != 2 || d[1] != 3 {
		t.Errorf("Sub = %v", d)
	}
}

func TestCheckDim(t *testing.T) {
	if err := CheckDim(line{}, State{0, 0}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckDim(line{}, State{0}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestForEachVisitsAll(t *testing.T) {
	out := make([]int, 100)
	err := ForEach(context.Background(), len(out), 4, func(_ context.Context, i int) error {
		out[i] = i * i
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != i*i {
			t.Fatalf("index %d = %d", i, v)
		}
	}
}

func TestForEachSucceedsRepeatedly(t *testing.T) {
	ctx := context.Background()
	for run := 0; run < 3; run++ {
		if err := ForEach(ctx, 3, 2, func(context.Context, int) error { return nil }); err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
	}
	if ctx.Err() != nil {
		t.Fatal("parent context canceled")
	}
}

func TestForEachEmpty(t *testing.T) {
	if err := ForEach(context.Background(), 0, 4, nil); err != nil {
		t.Fatal(err)
	}
}

func TestForEachStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	err := ForEach(context.Background(), 1000, 1, func(_ context.Context, i int) error {
		calls.Add(1)
		if i == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls.Load() >= 1000 {
		t.Error("work continued after failure")
	}
}

func TestForEachCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEach(ctx, 10, 2, func(context.Context, int) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
