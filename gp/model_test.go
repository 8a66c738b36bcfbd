package gp

import (
	"errors"
	"math"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := func() *Model {
		m := NewModel(2)
		m.SetObjective(Posynomial{}.Term(1, 1, 0).Term(1, 0, 1))
		m.AddConstraint(Posynomial{}.Term(0.5, -1, 0))
		return m
	}

	cases := []struct {
		name   string
		mutate func(*Model)
		want   error
	}{
		{"ok", func(m *Model) {}, nil},
		{"no variables", func(m *Model) { m.NumVars = 0 }, ErrNoVariables},
		{"empty objective", func(m *Model) { m.Objective = nil }, ErrEmptyObjective},
		{"empty constraint", func(m *Model) { m.AddConstraint(Posynomial{}) }, ErrEmptyConstraint},
		{"zero coefficient", func(m *Model) { m.AddConstraint(Posynomial{}.Term(0, 1, 0)) }, ErrBadCoefficient},
		{"negative coefficient", func(m *Model) { m.AddConstraint(Posynomial{}.Term(-2, 1, 0)) }, ErrBadCoefficient},
		{"NaN coefficient", func(m *Model) { m.AddConstraint(Posynomial{}.Term(math.NaN(), 1, 0)) }, ErrBadCoefficient},
		{"exponent arity", func(m *Model) { m.AddConstraint(Posynomial{}.Term(1, 1)) }, ErrBadExponents},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := valid()
			tc.mutate(m)
			err := m.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPosynomialEval(t *testing.T) {
	// 2*x^2*y + 3/y at (2, 3): 2*4*3 + 1 = 25.
	p := Posynomial{}.Term(2, 2, 1).Term(3, 0, -1)
	got := p.Eval([]float64{2, 3})
	if math.Abs(got-25) > 1e-12 {
		t.Fatalf("Eval = %v, want 25", got)
	}
}

func TestStandardFormShape(t *testing.T) {
	m := NewModel(2)
	m.SetObjective(Posynomial{}.Term(1, 1, 0).Term(1, 0, 1))
	m.AddConstraint(Posynomial{}.Term(0.5, -1, 0))
	m.AddConstraint(Posynomial{}.Term(2, 1, -1).Term(4, 0, 1))

	terms, expo, coefLog := standardForm(m)

	wantTerms := []int{2, 1, 2}
	if len(terms) != len(wantTerms) {
		t.Fatalf("terms = %v, want %v", terms, wantTerms)
	}
	for i := range wantTerms {
		if terms[i] != wantTerms[i] {
			t.Fatalf("terms = %v, want %v", terms, wantTerms)
		}
	}

	if expo.Rows() != 5 || expo.Cols() != 2 {
		t.Fatalf("exponent matrix is %dx%d, want 5x2", expo.Rows(), expo.Cols())
	}
	// Row 2 is the first constraint monomial: exponents (-1, 0).
	// The matrix is stored column-major.
	at := func(i, j int) float64 { return expo.GetIndex(j*expo.Rows() + i) }
	if got := at(2, 0); got != -1 {
		t.Errorf("expo[2][0] = %v, want -1", got)
	}
	if got := at(2, 1); got != 0 {
		t.Errorf("expo[2][1] = %v, want 0", got)
	}

	if coefLog.NumElements() != 5 {
		t.Fatalf("coefficient vector has %d entries, want 5", coefLog.NumElements())
	}
	if got, want := coefLog.GetIndex(2), math.Log(0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("log coef[2] = %v, want %v", got, want)
	}
	if got, want := coefLog.GetIndex(4), math.Log(4); math.Abs(got-want) > 1e-12 {
		t.Errorf("log coef[4] = %v, want %v", got, want)
	}
}
