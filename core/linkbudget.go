// core/linkbudget.go
package core

import (
	"fmt"
	"math"
	"time"

	"github.com/signalsfoundry/power-planner/model"
)

// minPathGain floors occluded or extremely lossy paths. The geometric
// program's log transform needs every gain strictly positive, so a
// blocked path contributes this residual gain instead of zero.
const minPathGain = 1e-15

// Scenario describes a fleet of terminals, the radio profiles they carry
// and the transmitter/receiver pairs whose links must meet the SINR floor.
// BuildProblem snapshots the scenario at a set of positions into a
// solvable Problem.
type Scenario struct {
	Profiles  map[string]*model.RadioProfile
	Terminals map[string]*model.Terminal
	Pairs     []model.LinkPair
	SINRMin   float64
}

// PositionsAt propagates every terminal's motion model to t.
func (s *Scenario) PositionsAt(t time.Time) map[string]Vec3 {
	positions := make(map[string]Vec3, len(s.Terminals))
	for id, term := range s.Terminals {
		positions[id] = MotionFor(term).PositionAt(t)
	}
	return positions
}

// BuildProblem derives the gain matrix, noise floors and power bounds for
// the scenario's pairs at the given positions. Row and column order
// follows the order of Pairs: Gains[i][k] couples pair k's transmitter
// into pair i's receiver.
func (s *Scenario) BuildProblem(positions map[string]Vec3) (*Problem, error) {
	n := len(s.Pairs)
	if n == 0 {
		return nil, fmt.Errorf("%w: scenario declares no link pairs", ErrMalformedInput)
	}

	p := &Problem{
		Gains:       make([][]float64, n),
		NoiseFloors: make([]float64, n),
		MinPower:    make([]float64, n),
		MaxPower:    make([]float64, n),
		SINRMin:     s.SINRMin,
	}

	for i, pair := range s.Pairs {
		rx, err := s.terminal(pair.RxID)
		if err != nil {
			return nil, err
		}
		rxProfile, err := s.profile(rx.ProfileID)
		if err != nil {
			return nil, err
		}
		rxPos, ok := positions[pair.RxID]
		if !ok {
			return nil, fmt.Errorf("%w: no position for terminal %q", ErrMalformedInput, pair.RxID)
		}

		p.NoiseFloors[i] = noiseFloorW(rxProfile)
		p.Gains[i] = make([]float64, n)

		for k, other := range s.Pairs {
			tx, err := s.terminal(other.TxID)
			if err != nil {
				return nil, err
			}
			txProfile, err := s.profile(tx.ProfileID)
			if err != nil {
				return nil, err
			}
			txPos, ok := positions[other.TxID]
			if !ok {
				return nil, fmt.Errorf("%w: no position for terminal %q", ErrMalformedInput, other.TxID)
			}
			p.Gains[i][k] = pathGain(txProfile, rxProfile, txPos, rxPos)

			if i == k {
				p.MinPower[i] = txProfile.MinPowerW
				p.MaxPower[i] = txProfile.MaxPowerW
			}
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Scenario) terminal(id string) (*model.Terminal, error) {
	term, ok := s.Terminals[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown terminal %q", ErrMalformedInput, id)
	}
	return term, nil
}

func (s *Scenario) profile(id string) (*model.RadioProfile, error) {
	prof, ok := s.Profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown radio profile %q", ErrMalformedInput, id)
	}
	return prof, nil
}

// pathGain returns the linear power gain of the path from tx to rx: the
// antenna gains minus free-space path loss at the transmitter's mid-band
// frequency. Paths occluded by the Earth get the residual minPathGain.
func pathGain(tx, rx *model.RadioProfile, txPos, rxPos Vec3) float64 {
	if !hasLineOfSight(txPos, rxPos) {
		return minPathGain
	}

	d := txPos.DistanceTo(rxPos)
	if d < 1 {
		d = 1
	}

	// Free-space path loss in dB: 92.45 + 20 log10(d_km) + 20 log10(f_GHz).
	fspl := 92.45 + 20*math.Log10(d) + 20*math.Log10(tx.MidBandGHz())

	gt := tx.TxGainDBi
	if gt == 0 {
		gt = 30
	}
	gr := rx.RxGainDBi
	if gr == 0 {
		gr = 30
	}

	gainDB := gt + gr - fspl
	gain := math.Pow(10, gainDB/10)
	if gain < minPathGain {
		gain = minPathGain
	}
	return gain
}

// noiseFloorW returns the thermal noise power kT0B in watts, raised by
// the receiver's noise figure. Bandwidth falls back to 1 MHz when the
// profile leaves it unset.
func noiseFloorW(rx *model.RadioProfile) float64 {
	bHz := rx.BandwidthMHz * 1e6
	if bHz <= 0 {
		bHz = 1e6
	}
	// kT0 = -228.6 dBW/K/Hz + 10 log10(290 K).
	noiseDBW := -228.6 + 10*math.Log10(290) + 10*math.Log10(bHz) + rx.NoiseFigureDB
	return math.Pow(10, noiseDBW/10)
}
