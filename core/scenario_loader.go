// core/scenario_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/power-planner/model"
)

// internal JSON shapes, unexported so the file format can evolve without
// touching the in-memory model.
type scenarioJSON struct {
	SINRMin   float64        `json:"sinr_min"`
	Profiles  []profileJSON  `json:"profiles"`
	Terminals []terminalJSON `json:"terminals"`
	Pairs     []pairJSON     `json:"pairs"`
}

type profileJSON struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MinGHz        float64 `json:"min_ghz"`
	MaxGHz        float64 `json:"max_ghz"`
	TxGainDBi     float64 `json:"tx_gain_dbi"`
	RxGainDBi     float64 `json:"rx_gain_dbi"`
	NoiseFigureDB float64 `json:"noise_figure_db"`
	BandwidthMHz  float64 `json:"bandwidth_mhz"`
	MinPowerW     float64 `json:"min_power_w"`
	MaxPowerW     float64 `json:"max_power_w"`
}

type terminalJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Position  *model.Position `json:"position,omitempty"`
	TLE1      string          `json:"tle1,omitempty"`
	TLE2      string          `json:"tle2,omitempty"`
	ProfileID string          `json:"profile_id"`
}

type pairJSON struct {
	ID   string `json:"id"`
	TxID string `json:"tx_id"`
	RxID string `json:"rx_id"`
}

// LoadScenario reads a scenario from JSON and resolves every reference:
// each terminal must name a known profile and each pair two known
// terminals. All errors are reported as ErrMalformedInput.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode failed: %v", ErrMalformedInput, err)
	}

	s := &Scenario{
		Profiles:  make(map[string]*model.RadioProfile, len(payload.Profiles)),
		Terminals: make(map[string]*model.Terminal, len(payload.Terminals)),
		Pairs:     make([]model.LinkPair, 0, len(payload.Pairs)),
		SINRMin:   payload.SINRMin,
	}

	for _, jp := range payload.Profiles {
		if jp.ID == "" {
			return nil, fmt.Errorf("%w: profile with empty id", ErrMalformedInput)
		}
		if _, dup := s.Profiles[jp.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate profile %q", ErrMalformedInput, jp.ID)
		}
		s.Profiles[jp.ID] = &model.RadioProfile{
			ID:            jp.ID,
			Name:          jp.Name,
			Band:          model.FrequencyBand{MinGHz: jp.MinGHz, MaxGHz: jp.MaxGHz},
			TxGainDBi:     jp.TxGainDBi,
			RxGainDBi:     jp.RxGainDBi,
			NoiseFigureDB: jp.NoiseFigureDB,
			BandwidthMHz:  jp.BandwidthMHz,
			MinPowerW:     jp.MinPowerW,
			MaxPowerW:     jp.MaxPowerW,
		}
	}

	for _, jt := range payload.Terminals {
		if jt.ID == "" {
			return nil, fmt.Errorf("%w: terminal with empty id", ErrMalformedInput)
		}
		if _, dup := s.Terminals[jt.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate terminal %q", ErrMalformedInput, jt.ID)
		}
		if _, ok := s.Profiles[jt.ProfileID]; !ok {
			return nil, fmt.Errorf("%w: terminal %q names unknown profile %q", ErrMalformedInput, jt.ID, jt.ProfileID)
		}
		term := &model.Terminal{
			ID:        jt.ID,
			Name:      jt.Name,
			TLE1:      jt.TLE1,
			TLE2:      jt.TLE2,
			ProfileID: jt.ProfileID,
		}
		if jt.Position != nil {
			term.Position = *jt.Position
		}
		if !term.Orbital() && jt.Position == nil {
			return nil, fmt.Errorf("%w: terminal %q has neither a position nor a TLE", ErrMalformedInput, jt.ID)
		}
		s.Terminals[jt.ID] = term
	}

	for _, jp := range payload.Pairs {
		if jp.ID == "" {
			return nil, fmt.Errorf("%w: pair with empty id", ErrMalformedInput)
		}
		if _, ok := s.Terminals[jp.TxID]; !ok {
			return nil, fmt.Errorf("%w: pair %q names unknown transmitter %q", ErrMalformedInput, jp.ID, jp.TxID)
		}
		if _, ok := s.Terminals[jp.RxID]; !ok {
			return nil, fmt.Errorf("%w: pair %q names unknown receiver %q", ErrMalformedInput, jp.ID, jp.RxID)
		}
		s.Pairs = append(s.Pairs, model.LinkPair{ID: jp.ID, TxID: jp.TxID, RxID: jp.RxID})
	}

	return s, nil
}
