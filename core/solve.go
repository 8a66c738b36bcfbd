// core/solve.go
package core

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/power-planner/gp"
	"github.com/signalsfoundry/power-planner/internal/logging"
)

// Solve outcomes as recorded by the metrics layer.
const (
	OutcomeOptimal          = "optimal"
	OutcomeMalformed        = "malformed"
	OutcomeInfeasible       = "infeasible"
	OutcomeNumericalFailure = "numerical_failure"
	OutcomeCanceled         = "canceled"
)

// Allocation is the planner's answer for one problem instance.
type Allocation struct {
	// Powers is the optimal per-transmitter power vector.
	Powers []float64 `json:"powers"`
	// TotalPower is the optimal objective value, sum(Powers).
	TotalPower float64 `json:"total_power"`
	// Diagnostics holds the recomputed per-receiver quantities.
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// SolveRecorder receives the outcome and duration of every solve.
// Implemented by the observability collector.
type SolveRecorder interface {
	ObserveSolve(outcome string, seconds float64)
}

// SolveOptions tunes the delegated GP solve.
type SolveOptions struct {
	// MaxIter bounds the interior-point iterations; 0 uses the default.
	MaxIter int
	// ShowProgress makes the solver print per-iteration residuals.
	ShowProgress bool
}

// Planner builds the geometric-programming formulation of a power-control
// problem, delegates solving, and reports the allocation. A Planner is
// stateless between calls; distinct problems can be solved concurrently.
type Planner struct {
	Log      logging.Logger
	Recorder SolveRecorder
	Options  SolveOptions
}

// NewPlanner constructs a planner logging through log. A nil logger is
// replaced by a noop one.
func NewPlanner(log logging.Logger) *Planner {
	if log == nil {
		log = logging.Noop()
	}
	return &Planner{Log: log}
}

// Solve runs the one-shot build → solve → inspect computation. It blocks
// until the delegated solver returns. Errors follow the planner taxonomy:
// ErrMalformedInput, ErrInfeasible, ErrNumericalFailure (and ErrUnbounded,
// reserved; it cannot occur while powers are bounded above).
func (pl *Planner) Solve(ctx context.Context, p *Problem) (*Allocation, error) {
	start := time.Now()
	alloc, outcome, err := pl.solve(ctx, p)
	if pl.Recorder != nil {
		pl.Recorder.ObserveSolve(outcome, time.Since(start).Seconds())
	}
	return alloc, err
}

func (pl *Planner) solve(ctx context.Context, p *Problem) (*Allocation, string, error) {
	ctx, span := otel.Tracer("power-planner/core").Start(ctx, "Planner.Solve")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, OutcomeCanceled, err
	}

	if err := p.Validate(); err != nil {
		pl.Log.Warn(ctx, "rejecting malformed problem", logging.String("error", err.Error()))
		recordSpanError(span, err)
		return nil, OutcomeMalformed, err
	}

	span.SetAttributes(attribute.Int("problem.size", p.Size()))

	// Decide feasibility before delegating: the interior-point GP path
	// reports only optimal/unknown, so an infeasible instance would
	// otherwise be indistinguishable from a numerical failure.
	if _, feasible := MinimalFeasiblePowers(p); !feasible {
		err := fmt.Errorf("%w: minimal bounded response still violates an SINR floor", ErrInfeasible)
		pl.Log.Info(ctx, "problem is infeasible", logging.Int("size", p.Size()))
		recordSpanError(span, err)
		return nil, OutcomeInfeasible, err
	}

	m, err := BuildModel(p)
	if err != nil {
		recordSpanError(span, err)
		return nil, OutcomeMalformed, err
	}

	sol, err := gp.Solve(m, gp.Options{
		MaxIter:      pl.Options.MaxIter,
		ShowProgress: pl.Options.ShowProgress,
	})
	if err != nil || sol.Status != gp.StatusOptimal {
		werr := fmt.Errorf("%w: %v", ErrNumericalFailure, err)
		pl.Log.Error(ctx, "delegated solve failed", logging.String("error", werr.Error()))
		recordSpanError(span, werr)
		return nil, OutcomeNumericalFailure, werr
	}

	diag, err := Evaluate(p, sol.X)
	if err != nil {
		werr := fmt.Errorf("%w: solution failed re-evaluation: %v", ErrNumericalFailure, err)
		recordSpanError(span, werr)
		return nil, OutcomeNumericalFailure, werr
	}

	alloc := &Allocation{
		Powers:      sol.X,
		TotalPower:  sol.Objective,
		Diagnostics: diag,
	}
	pl.Log.Info(ctx, "solved power allocation",
		logging.Int("size", p.Size()),
		logging.Float64("total_power", alloc.TotalPower),
		logging.Float64("worst_inverse_sinr", diag.WorstInverseSINR),
	)
	return alloc, OutcomeOptimal, nil
}

func recordSpanError(span trace.Span, err error) {
	if span.IsRecording() {
		span.RecordError(err)
	}
}
