// Package gp represents geometric programs in posynomial standard form
// and delegates solving to the cvx interior-point solver.
//
// Constraints are plain data: monomial records grouped into posynomials,
// rather than operator-overloaded expression trees. A model reads
//
//	minimize   f0(x)
//	subject to fi(x) <= 1   for every constraint posynomial fi
//
// over implicitly positive variables x.
package gp

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoVariables     = errors.New("model has no variables")
	ErrEmptyObjective  = errors.New("objective has no terms")
	ErrEmptyConstraint = errors.New("constraint has no terms")
	ErrBadCoefficient  = errors.New("monomial coefficient must be strictly positive and finite")
	ErrBadExponents    = errors.New("monomial exponent count does not match variable count")
)

// Monomial is a single term c * x0^a0 * ... * x(n-1)^a(n-1) with c > 0.
// Exponents may be any real numbers.
type Monomial struct {
	Coefficient float64
	Exponents   []float64
}

// Posynomial is a sum of monomials.
type Posynomial []Monomial

// Term appends a monomial and returns the extended posynomial, so
// posynomials can be assembled in a single expression.
func (p Posynomial) Term(coefficient float64, exponents ...float64) Posynomial {
	return append(p, Monomial{Coefficient: coefficient, Exponents: exponents})
}

// Eval evaluates the posynomial at the (positive) point x.
func (p Posynomial) Eval(x []float64) float64 {
	sum := 0.0
	for _, t := range p {
		term := t.Coefficient
		for j, a := range t.Exponents {
			if a != 0 {
				term *= math.Pow(x[j], a)
			}
		}
		sum += term
	}
	return sum
}

// Model is a geometric program over NumVars positive variables.
type Model struct {
	NumVars     int
	Objective   Posynomial
	Constraints []Posynomial
}

// NewModel creates an empty model over numVars variables.
func NewModel(numVars int) *Model {
	return &Model{NumVars: numVars}
}

// SetObjective replaces the objective posynomial.
func (m *Model) SetObjective(p Posynomial) {
	m.Objective = p
}

// AddConstraint appends the constraint p(x) <= 1.
func (m *Model) AddConstraint(p Posynomial) {
	m.Constraints = append(m.Constraints, p)
}

// NumTerms returns the total monomial count across the objective and all
// constraints.
func (m *Model) NumTerms() int {
	total := len(m.Objective)
	for _, c := range m.Constraints {
		total += len(c)
	}
	return total
}

// Validate checks that the model is a well-formed geometric program:
// at least one variable, a non-empty objective, non-empty constraints,
// strictly positive coefficients, and exponent vectors of length NumVars.
func (m *Model) Validate() error {
	if m.NumVars < 1 {
		return ErrNoVariables
	}
	if len(m.Objective) == 0 {
		return ErrEmptyObjective
	}
	if err := m.checkPosynomial(m.Objective); err != nil {
		return fmt.Errorf("objective: %w", err)
	}
	for i, c := range m.Constraints {
		if len(c) == 0 {
			return fmt.Errorf("constraint %d: %w", i, ErrEmptyConstraint)
		}
		if err := m.checkPosynomial(c); err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	return nil
}

func (m *Model) checkPosynomial(p Posynomial) error {
	for _, t := range p {
		if !(t.Coefficient > 0) || math.IsInf(t.Coefficient, 1) || math.IsNaN(t.Coefficient) {
			return fmt.Errorf("%w: %v", ErrBadCoefficient, t.Coefficient)
		}
		if len(t.Exponents) != m.NumVars {
			return fmt.Errorf("%w: got %d, want %d", ErrBadExponents, len(t.Exponents), m.NumVars)
		}
	}
	return nil
}
