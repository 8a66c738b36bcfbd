// core/build.go
package core

import (
	"github.com/signalsfoundry/power-planner/gp"
)

// BuildModel encodes the minimum-total-power problem as a geometric
// program over the n transmit powers:
//
//	minimize   sum_i p_i
//	subject to MinPower[i] / p_i <= 1
//	           p_i / MaxPower[i] <= 1
//	           SINRMin * (sigma_i + sum_{k!=i} G[i][k] p_k) / (G[i][i] p_i) <= 1
//
// The SINR constraint is the inverse-SINR form: each interference and
// noise term divided by the receiver's signal power is a monomial, so the
// whole left side is a posynomial.
func BuildModel(p *Problem) (*gp.Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.Size()
	m := gp.NewModel(n)

	objective := gp.Posynomial{}
	for i := 0; i < n; i++ {
		objective = objective.Term(1, unitExponents(n, i, 1)...)
	}
	m.SetObjective(objective)

	for i := 0; i < n; i++ {
		direct := p.Gains[i][i]
		c := gp.Posynomial{}.Term(p.SINRMin*p.NoiseFloors[i]/direct, unitExponents(n, i, -1)...)
		for k := 0; k < n; k++ {
			if k == i {
				continue
			}
			e := make([]float64, n)
			e[k] = 1
			e[i] = -1
			c = c.Term(p.SINRMin*p.Gains[i][k]/direct, e...)
		}
		m.AddConstraint(c)
	}

	for i := 0; i < n; i++ {
		m.AddConstraint(gp.Posynomial{}.Term(p.MinPower[i], unitExponents(n, i, -1)...))
		m.AddConstraint(gp.Posynomial{}.Term(1/p.MaxPower[i], unitExponents(n, i, 1)...))
	}

	return m, nil
}

// unitExponents builds an exponent vector that is zero everywhere except
// position i.
func unitExponents(n, i int, v float64) []float64 {
	e := make([]float64, n)
	e[i] = v
	return e
}
