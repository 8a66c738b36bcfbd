// core/problem.go
package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMalformedInput wraps every shape or positivity violation in the
	// problem data. The geometric-programming log transform requires
	// strictly positive gains, noise floors, bounds and SINR floor.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInfeasible means no power vector satisfies the bounds and SINR
	// floors simultaneously. A property of the data; never retried.
	ErrInfeasible = errors.New("no feasible power allocation")

	// ErrUnbounded is reserved for objectives that can decrease without
	// limit. It cannot occur in this model (powers are bounded on both
	// sides) but belongs to the planner's error taxonomy.
	ErrUnbounded = errors.New("objective unbounded below")

	// ErrNumericalFailure means the delegated solver stopped without a
	// certificate on an instance the feasibility probe could not rule out.
	ErrNumericalFailure = errors.New("solver did not converge")
)

// Problem describes one power-control instance: n transmitter/receiver
// pairs, an n×n path gain matrix, per-receiver noise floors,
// per-transmitter power bounds, and a common SINR floor.
//
// Gains[i][k] is the fraction of transmitter k's power received at
// receiver i; diagonal entries are the direct-link gains.
type Problem struct {
	Gains       [][]float64 `json:"gains"`
	NoiseFloors []float64   `json:"noise_floors"`
	MinPower    []float64   `json:"min_power"`
	MaxPower    []float64   `json:"max_power"`
	SINRMin     float64     `json:"sinr_min"`
}

// Size returns n, the number of transmitter/receiver pairs.
func (p *Problem) Size() int { return len(p.Gains) }

// Validate checks the shape and positivity invariants. Every violation is
// reported as ErrMalformedInput.
func (p *Problem) Validate() error {
	n := len(p.Gains)
	if n < 1 {
		return fmt.Errorf("%w: gain matrix is empty", ErrMalformedInput)
	}
	for i, row := range p.Gains {
		if len(row) != n {
			return fmt.Errorf("%w: gain row %d has %d entries, want %d", ErrMalformedInput, i, len(row), n)
		}
		for k, g := range row {
			if !positive(g) {
				return fmt.Errorf("%w: gain[%d][%d] = %v, want strictly positive", ErrMalformedInput, i, k, g)
			}
		}
	}

	if len(p.NoiseFloors) != n {
		return fmt.Errorf("%w: %d noise floors, want %d", ErrMalformedInput, len(p.NoiseFloors), n)
	}
	if len(p.MinPower) != n {
		return fmt.Errorf("%w: %d lower power bounds, want %d", ErrMalformedInput, len(p.MinPower), n)
	}
	if len(p.MaxPower) != n {
		return fmt.Errorf("%w: %d upper power bounds, want %d", ErrMalformedInput, len(p.MaxPower), n)
	}

	for i := 0; i < n; i++ {
		if !positive(p.NoiseFloors[i]) {
			return fmt.Errorf("%w: noise floor %d = %v, want strictly positive", ErrMalformedInput, i, p.NoiseFloors[i])
		}
		if !positive(p.MinPower[i]) {
			return fmt.Errorf("%w: lower power bound %d = %v, want strictly positive", ErrMalformedInput, i, p.MinPower[i])
		}
		if !positive(p.MaxPower[i]) {
			return fmt.Errorf("%w: upper power bound %d = %v, want strictly positive", ErrMalformedInput, i, p.MaxPower[i])
		}
		if p.MinPower[i] > p.MaxPower[i] {
			return fmt.Errorf("%w: power bounds for transmitter %d are inverted (%v > %v)",
				ErrMalformedInput, i, p.MinPower[i], p.MaxPower[i])
		}
	}

	if !positive(p.SINRMin) {
		return fmt.Errorf("%w: sinr_min = %v, want strictly positive", ErrMalformedInput, p.SINRMin)
	}
	return nil
}

// interferencePlusNoise returns sigma_i plus the interference received at
// receiver i from every other transmitter at the given powers.
func (p *Problem) interferencePlusNoise(i int, powers []float64) float64 {
	s := p.NoiseFloors[i]
	for k, pk := range powers {
		if k != i {
			s += p.Gains[i][k] * pk
		}
	}
	return s
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v)
}
