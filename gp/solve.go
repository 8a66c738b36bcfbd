package gp

import (
	"fmt"

	"github.com/hrautila/cvx"
	"github.com/hrautila/matrix"
)

// Status reports the solver's verdict for a model.
type Status int

const (
	// StatusUnknown means the solver stopped without an optimality
	// certificate. The caller decides whether the cause is infeasibility
	// or a numerical failure; the interior-point GP path does not
	// distinguish the two.
	StatusUnknown Status = iota
	// StatusOptimal means an optimal point was found to the solver's
	// tolerance.
	StatusOptimal
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	default:
		return "unknown"
	}
}

// DefaultMaxIter bounds the interior-point iteration count when the
// caller does not override it.
const DefaultMaxIter = 100

// Options tunes the delegated solve.
type Options struct {
	// MaxIter overrides DefaultMaxIter when positive.
	MaxIter int
	// ShowProgress makes the solver print per-iteration residuals.
	ShowProgress bool
	// KKTSolver selects a cvx KKT solver by name; empty picks the default.
	KKTSolver string
}

// Solution carries the result of a successful solve.
type Solution struct {
	Status Status
	// X holds the variable values in the positive domain (the solver works
	// in log space; values are already mapped back).
	X []float64
	// Objective is the objective posynomial evaluated at X.
	Objective float64
}

// Solve validates the model, assembles the posynomial standard form and
// delegates to cvx.Gp. A non-nil Solution with StatusUnknown and a non-nil
// error are returned together when the solver stops early.
func Solve(m *Model, opts Options) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	terms, expo, coefLog := standardForm(m)

	var solopts cvx.SolverOptions
	solopts.MaxIter = DefaultMaxIter
	if opts.MaxIter > 0 {
		solopts.MaxIter = opts.MaxIter
	}
	solopts.ShowProgress = opts.ShowProgress
	if opts.KKTSolver != "" {
		solopts.KKTSolverName = opts.KKTSolver
	}

	sol, err := cvx.Gp(terms, expo, coefLog, nil, nil, nil, nil, &solopts)
	if sol == nil || sol.Status != cvx.Optimal {
		if err == nil {
			err = fmt.Errorf("solver stopped without an optimality certificate")
		}
		return &Solution{Status: StatusUnknown}, err
	}

	x := sol.Result.At("x")[0]
	values := matrix.Exp(x)
	out := &Solution{
		Status: StatusOptimal,
		X:      make([]float64, m.NumVars),
	}
	for i := 0; i < m.NumVars; i++ {
		out.X[i] = values.GetIndex(i)
	}
	out.Objective = m.Objective.Eval(out.X)
	return out, nil
}

// standardForm flattens the model into the triple cvx.Gp understands:
// per-posynomial term counts (objective first), the exponent matrix with
// one row per monomial, and the element-wise log of the coefficients.
func standardForm(m *Model) ([]int, *matrix.FloatMatrix, *matrix.FloatMatrix) {
	posys := make([]Posynomial, 0, len(m.Constraints)+1)
	posys = append(posys, m.Objective)
	posys = append(posys, m.Constraints...)

	total := 0
	terms := make([]int, len(posys))
	for i, p := range posys {
		terms[i] = len(p)
		total += len(p)
	}

	// FloatMatrixFromTable consumes one slice per column, so gather the
	// exponents variable by variable.
	cols := make([][]float64, m.NumVars)
	for j := range cols {
		cols[j] = make([]float64, 0, total)
	}
	coefs := make([]float64, 0, total)
	for _, p := range posys {
		for _, t := range p {
			for j := 0; j < m.NumVars; j++ {
				cols[j] = append(cols[j], t.Exponents[j])
			}
			coefs = append(coefs, t.Coefficient)
		}
	}

	expo := matrix.FloatMatrixFromTable(cols, matrix.ColumnOrder)
	coefLog := matrix.FloatNew(total, 1, coefs).Log()
	return terms, expo, coefLog
}
