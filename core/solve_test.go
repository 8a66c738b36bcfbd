package core

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hrautila/linalg/blas"
	"github.com/hrautila/matrix"
)

type recordingObserver struct {
	outcomes []string
	seconds  []float64
}

func (r *recordingObserver) ObserveSolve(outcome string, seconds float64) {
	r.outcomes = append(r.outcomes, outcome)
	r.seconds = append(r.seconds, seconds)
}

func (r *recordingObserver) last(t *testing.T) string {
	t.Helper()
	if len(r.outcomes) == 0 {
		t.Fatalf("no solve outcome recorded")
	}
	return r.outcomes[len(r.outcomes)-1]
}

func TestSolveFiveLinkInstance(t *testing.T) {
	rec := &recordingObserver{}
	pl := NewPlanner(nil)
	pl.Recorder = rec

	p := fivePairProblem()
	alloc, err := pl.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := rec.last(t); got != OutcomeOptimal {
		t.Errorf("recorded outcome = %q, want %q", got, OutcomeOptimal)
	}

	if math.Abs(alloc.TotalPower-0.96144149) > 1e-3 {
		t.Errorf("TotalPower = %v, want 0.96144149 within 1e-3", alloc.TotalPower)
	}

	want := matrix.FloatVector([]float64{0.18653122, 0.16730665, 0.23456276, 0.19618282, 0.17685804})
	got := matrix.FloatVector(alloc.Powers)
	if nrm := blas.Nrm2(want.Minus(got)).Float(); nrm > 1e-3 {
		t.Errorf("power vector off by %v from the known optimum", nrm)
	}

	// Every SINR floor is active at the optimum: inverse SINR is 1/0.2.
	for i, inv := range alloc.Diagnostics.InverseSINR {
		if math.Abs(inv-5) > 5e-2 {
			t.Errorf("InverseSINR[%d] = %v, want 5 at the optimum", i, inv)
		}
	}

	for i, pw := range alloc.Powers {
		if pw < p.MinPower[i]*(1-1e-6) || pw > p.MaxPower[i]*(1+1e-6) {
			t.Errorf("powers[%d] = %v outside bounds [%v, %v]", i, pw, p.MinPower[i], p.MaxPower[i])
		}
	}
}

func TestSolveTighterRequirementsCostMore(t *testing.T) {
	pl := NewPlanner(nil)
	ctx := context.Background()

	base, err := pl.Solve(ctx, fivePairProblem())
	if err != nil {
		t.Fatalf("base solve: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Problem)
		want   float64
	}{
		{"raised lower bound", func(p *Problem) { p.MinPower[0] = 0.3 }, 1.157711},
		{"raised sinr floor", func(p *Problem) { p.SINRMin = 0.3 }, 2.755821},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := fivePairProblem()
			tc.mutate(p)
			alloc, err := pl.Solve(ctx, p)
			if err != nil {
				t.Fatalf("Solve: %v", err)
			}
			if alloc.TotalPower <= base.TotalPower {
				t.Errorf("TotalPower = %v, want more than the base optimum %v", alloc.TotalPower, base.TotalPower)
			}
			if math.Abs(alloc.TotalPower-tc.want) > 1e-3 {
				t.Errorf("TotalPower = %v, want %v within 1e-3", alloc.TotalPower, tc.want)
			}
		})
	}

	// Relaxing the floor lets every transmitter sit at its lower bound.
	relaxed := fivePairProblem()
	relaxed.SINRMin = 0.1
	alloc, err := pl.Solve(ctx, relaxed)
	if err != nil {
		t.Fatalf("relaxed solve: %v", err)
	}
	if math.Abs(alloc.TotalPower-0.5) > 1e-3 {
		t.Errorf("TotalPower = %v, want 0.5 within 1e-3", alloc.TotalPower)
	}
}

func TestSolveSingleLink(t *testing.T) {
	pl := NewPlanner(nil)
	p := &Problem{
		Gains:       [][]float64{{1}},
		NoiseFloors: []float64{0.5},
		MinPower:    []float64{0.1},
		MaxPower:    []float64{5},
		SINRMin:     0.2,
	}

	alloc, err := pl.Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(alloc.Powers[0]-0.1) > 1e-4 {
		t.Errorf("powers[0] = %v, want 0.1", alloc.Powers[0])
	}
}

func TestSolveInfeasible(t *testing.T) {
	rec := &recordingObserver{}
	pl := NewPlanner(nil)
	pl.Recorder = rec

	p := fivePairProblem()
	p.SINRMin = 100

	_, err := pl.Solve(context.Background(), p)
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("Solve = %v, want ErrInfeasible", err)
	}
	if got := rec.last(t); got != OutcomeInfeasible {
		t.Errorf("recorded outcome = %q, want %q", got, OutcomeInfeasible)
	}
}

func TestSolveMalformed(t *testing.T) {
	rec := &recordingObserver{}
	pl := NewPlanner(nil)
	pl.Recorder = rec

	p := fivePairProblem()
	p.Gains[0][0] = 0

	_, err := pl.Solve(context.Background(), p)
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("Solve = %v, want ErrMalformedInput", err)
	}
	if got := rec.last(t); got != OutcomeMalformed {
		t.Errorf("recorded outcome = %q, want %q", got, OutcomeMalformed)
	}
}

func TestSolveCanceled(t *testing.T) {
	rec := &recordingObserver{}
	pl := NewPlanner(nil)
	pl.Recorder = rec

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pl.Solve(ctx, fivePairProblem())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve = %v, want context.Canceled", err)
	}
	if got := rec.last(t); got != OutcomeCanceled {
		t.Errorf("recorded outcome = %q, want %q", got, OutcomeCanceled)
	}
}
