package core

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	p := &Problem{
		Gains:       [][]float64{{1, 0.5}, {0.25, 2}},
		NoiseFloors: []float64{0.1, 0.2},
		MinPower:    []float64{0.05, 0.05},
		MaxPower:    []float64{5, 5},
		SINRMin:     0.5,
	}

	d, err := Evaluate(p, []float64{1, 2})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	wantSignal := []float64{1, 4}
	wantIPN := []float64{1.1, 0.45}
	wantInv := []float64{1.1, 0.1125}
	for i := range wantSignal {
		if math.Abs(d.Signal[i]-wantSignal[i]) > 1e-12 {
			t.Errorf("Signal[%d] = %v, want %v", i, d.Signal[i], wantSignal[i])
		}
		if math.Abs(d.InterferencePlusNoise[i]-wantIPN[i]) > 1e-12 {
			t.Errorf("InterferencePlusNoise[%d] = %v, want %v", i, d.InterferencePlusNoise[i], wantIPN[i])
		}
		if math.Abs(d.InverseSINR[i]-wantInv[i]) > 1e-12 {
			t.Errorf("InverseSINR[%d] = %v, want %v", i, d.InverseSINR[i], wantInv[i])
		}
	}
	if math.Abs(d.WorstInverseSINR-1.1) > 1e-12 {
		t.Errorf("WorstInverseSINR = %v, want 1.1", d.WorstInverseSINR)
	}
}

func TestEvaluateRejectsBadPowers(t *testing.T) {
	p := fivePairProblem()

	if _, err := Evaluate(p, []float64{1, 2, 3}); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("short power vector: err = %v, want ErrMalformedInput", err)
	}
	if _, err := Evaluate(p, []float64{1, 2, 3, 4, 0}); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("zero power: err = %v, want ErrMalformedInput", err)
	}
}
