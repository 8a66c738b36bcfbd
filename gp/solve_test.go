package gp

import (
	"math"
	"testing"
)

func TestSolveMonomialProgram(t *testing.T) {
	// minimize x*y subject to 2/x <= 1, 3/y <= 1. Every posynomial is a
	// monomial, so the optimum is at the bounds: x = 2, y = 3, objective 6.
	m := NewModel(2)
	m.SetObjective(Posynomial{}.Term(1, 1, 1))
	m.AddConstraint(Posynomial{}.Term(2, -1, 0))
	m.AddConstraint(Posynomial{}.Term(3, 0, -1))

	sol, err := Solve(m, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %v, want optimal", sol.Status)
	}
	if math.Abs(sol.X[0]-2) > 1e-5 || math.Abs(sol.X[1]-3) > 1e-5 {
		t.Errorf("x = %v, want [2 3]", sol.X)
	}
	if math.Abs(sol.Objective-6) > 1e-4 {
		t.Errorf("objective = %v, want 6", sol.Objective)
	}
}

func TestSolveSingleVariable(t *testing.T) {
	// minimize x subject to 0.1/x <= 1: optimum at the lower bound.
	m := NewModel(1)
	m.SetObjective(Posynomial{}.Term(1, 1))
	m.AddConstraint(Posynomial{}.Term(0.1, -1))

	sol, err := Solve(m, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %v, want optimal", sol.Status)
	}
	if math.Abs(sol.X[0]-0.1) > 1e-6 {
		t.Errorf("x = %v, want 0.1", sol.X[0])
	}
}

func TestSolveBoxDesign(t *testing.T) {
	// The classic box-design GP: maximize volume h*w*d under wall and
	// floor area budgets and aspect-ratio limits.
	const (
		aflr  = 1000.0
		awall = 100.0
		alpha = 0.5
		beta  = 2.0
		gamma = 0.5
		delta = 2.0
	)

	m := NewModel(3) // h, w, d
	m.SetObjective(Posynomial{}.Term(1, -1, -1, -1))
	m.AddConstraint(Posynomial{}.
		Term(2/awall, 1, 1, 0).
		Term(2/awall, 1, 0, 1))
	m.AddConstraint(Posynomial{}.Term(1/aflr, 0, 1, 1))
	m.AddConstraint(Posynomial{}.Term(alpha, -1, 1, 0))
	m.AddConstraint(Posynomial{}.Term(1/beta, 1, -1, 0))
	m.AddConstraint(Posynomial{}.Term(gamma, 0, 1, -1))
	m.AddConstraint(Posynomial{}.Term(1/delta, 0, -1, 1))

	sol, err := Solve(m, Options{MaxIter: 40})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Status != StatusOptimal {
		t.Fatalf("status = %v, want optimal", sol.Status)
	}

	// Every constraint must hold at the optimum, and the wall budget must
	// be tight (growing the box further would exceed it).
	for i, c := range m.Constraints {
		if v := c.Eval(sol.X); v > 1+1e-6 {
			t.Errorf("constraint %d violated: %v > 1", i, v)
		}
	}
	if wall := m.Constraints[0].Eval(sol.X); math.Abs(wall-1) > 1e-4 {
		t.Errorf("wall budget not tight: %v", wall)
	}
}

func TestSolveRejectsInvalidModel(t *testing.T) {
	m := NewModel(0)
	if _, err := Solve(m, Options{}); err == nil {
		t.Fatal("Solve accepted a model without variables")
	}
}
