// core/feasibility.go
package core

import "math"

const (
	probeMaxIter = 10000
	probeTol     = 1e-12
	// probeSlack absorbs floating-point noise when deciding whether the
	// probe's limit point satisfies an SINR floor.
	probeSlack = 1e-9
)

// MinimalFeasiblePowers runs the clamped best-response iteration
//
//	p_i <- clamp(SINRMin * (sigma_i + interference_i(p)) / G[i][i],
//	             MinPower[i], MaxPower[i])
//
// starting from MinPower. Each receiver's required power is nondecreasing
// in the others' powers, so the iterates grow monotonically and converge;
// whenever any feasible power vector exists the limit is the
// componentwise-minimal one. The returned flag reports whether the limit
// satisfies every SINR floor: when it does not, no feasible vector exists
// inside the power box and the instance is provably infeasible.
//
// The problem must already be validated.
func MinimalFeasiblePowers(p *Problem) ([]float64, bool) {
	n := p.Size()
	powers := make([]float64, n)
	copy(powers, p.MinPower)

	next := make([]float64, n)
	for iter := 0; iter < probeMaxIter; iter++ {
		delta := 0.0
		for i := 0; i < n; i++ {
			required := p.SINRMin * p.interferencePlusNoise(i, powers) / p.Gains[i][i]
			if required < p.MinPower[i] {
				required = p.MinPower[i]
			}
			if required > p.MaxPower[i] {
				required = p.MaxPower[i]
			}
			if d := math.Abs(required - powers[i]); d > delta {
				delta = d
			}
			next[i] = required
		}
		copy(powers, next)
		if delta < probeTol {
			break
		}
	}

	limit := 1 / p.SINRMin * (1 + probeSlack)
	for i := 0; i < n; i++ {
		inv := p.interferencePlusNoise(i, powers) / (p.Gains[i][i] * powers[i])
		if inv > limit {
			return powers, false
		}
	}
	return powers, true
}
