package core

import (
	"errors"
	"testing"
)

// fivePairProblem is the documented five-link instance used across the
// core tests. Its optimum and feasibility behaviour are known.
func fivePairProblem() *Problem {
	return &Problem{
		Gains: [][]float64{
			{1.0, 0.47, 0.939, 0.47, 0.235},
			{0.477, 1.0, 0.477, 0.477, 0.238},
			{1.046, 0.523, 1.0, 1.046, 1.046},
			{0.481, 0.481, 0.962, 1.0, 0.481},
			{0.228, 0.228, 0.913, 0.456, 1.0},
		},
		NoiseFloors: []float64{0.5, 0.5, 0.5, 0.5, 0.5},
		MinPower:    []float64{0.1, 0.1, 0.1, 0.1, 0.1},
		MaxPower:    []float64{5, 5, 5, 5, 5},
		SINRMin:     0.2,
	}
}

func TestProblemValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Problem)
	}{
		{"empty gains", func(p *Problem) { p.Gains = nil }},
		{"ragged gain row", func(p *Problem) { p.Gains[2] = p.Gains[2][:3] }},
		{"zero gain", func(p *Problem) { p.Gains[1][3] = 0 }},
		{"negative gain", func(p *Problem) { p.Gains[0][0] = -1 }},
		{"noise floor count", func(p *Problem) { p.NoiseFloors = p.NoiseFloors[:4] }},
		{"zero noise floor", func(p *Problem) { p.NoiseFloors[2] = 0 }},
		{"lower bound count", func(p *Problem) { p.MinPower = append(p.MinPower, 0.1) }},
		{"zero lower bound", func(p *Problem) { p.MinPower[0] = 0 }},
		{"upper bound count", func(p *Problem) { p.MaxPower = p.MaxPower[:1] }},
		{"zero upper bound", func(p *Problem) { p.MaxPower[4] = 0 }},
		{"inverted bounds", func(p *Problem) { p.MinPower[1] = 10 }},
		{"zero sinr floor", func(p *Problem) { p.SINRMin = 0 }},
		{"negative sinr floor", func(p *Problem) { p.SINRMin = -0.2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := fivePairProblem()
			tc.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatalf("Validate() accepted a malformed problem")
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Validate() = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestProblemValidateAccepts(t *testing.T) {
	p := fivePairProblem()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if got := p.Size(); got != 5 {
		t.Errorf("Size() = %d, want 5", got)
	}
}

func TestInterferencePlusNoise(t *testing.T) {
	p := &Problem{
		Gains:       [][]float64{{1, 0.5}, {0.25, 2}},
		NoiseFloors: []float64{0.1, 0.2},
		MinPower:    []float64{0.05, 0.05},
		MaxPower:    []float64{1, 1},
		SINRMin:     2,
	}
	powers := []float64{1, 2}

	if got, want := p.interferencePlusNoise(0, powers), 0.1+0.5*2; got != want {
		t.Errorf("interferencePlusNoise(0) = %v, want %v", got, want)
	}
	if got, want := p.interferencePlusNoise(1, powers), 0.2+0.25*1; got != want {
		t.Errorf("interferencePlusNoise(1) = %v, want %v", got, want)
	}
}
