// core/evaluate.go
package core

import "fmt"

// Diagnostics reports per-receiver quantities recomputed from a power
// vector, for verification and reporting.
type Diagnostics struct {
	// Signal is the received signal power G[i][i] * p_i.
	Signal []float64 `json:"signal"`
	// InterferencePlusNoise is sigma_i plus the interference from every
	// other transmitter.
	InterferencePlusNoise []float64 `json:"interference_plus_noise"`
	// InverseSINR is InterferencePlusNoise / Signal; the SINR floor holds
	// when it does not exceed 1/SINRMin.
	InverseSINR []float64 `json:"inverse_sinr"`
	// WorstInverseSINR is the largest InverseSINR entry.
	WorstInverseSINR float64 `json:"worst_inverse_sinr"`
}

// Evaluate recomputes the derived quantities for the given powers. Pure
// function of the powers and the problem data; no side effects.
func Evaluate(p *Problem, powers []float64) (*Diagnostics, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.Size()
	if len(powers) != n {
		return nil, fmt.Errorf("%w: power vector has %d entries, want %d", ErrMalformedInput, len(powers), n)
	}
	for i, pw := range powers {
		if !positive(pw) {
			return nil, fmt.Errorf("%w: power %d = %v, want strictly positive", ErrMalformedInput, i, pw)
		}
	}

	d := &Diagnostics{
		Signal:                make([]float64, n),
		InterferencePlusNoise: make([]float64, n),
		InverseSINR:           make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d.Signal[i] = p.Gains[i][i] * powers[i]
		d.InterferencePlusNoise[i] = p.interferencePlusNoise(i, powers)
		d.InverseSINR[i] = d.InterferencePlusNoise[i] / d.Signal[i]
		if d.InverseSINR[i] > d.WorstInverseSINR {
			d.WorstInverseSINR = d.InverseSINR[i]
		}
	}
	return d, nil
}
