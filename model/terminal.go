package model

// Position is an ECEF coordinate in kilometres.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Terminal is a radio terminal taking part in a power plan: a platform
// with either a fixed ECEF position or a TLE-driven orbit, referencing
// the radio profile its transceiver follows.
type Terminal struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Position is the fixed ECEF position in kilometres. Ignored when a
	// TLE is present.
	Position Position `json:"position"`

	// TLE1/TLE2 describe an orbit; when both are set the terminal's
	// position is propagated with SGP4 instead of taken from Position.
	TLE1 string `json:"tle1,omitempty"`
	TLE2 string `json:"tle2,omitempty"`

	ProfileID string `json:"profile_id"`
}

// Orbital reports whether the terminal's position comes from a TLE.
func (t *Terminal) Orbital() bool {
	return t.TLE1 != "" && t.TLE2 != ""
}

// LinkPair names one transmitter → receiver pair in a plan. The order of
// pairs in a scenario defines the row/column order of the gain matrix.
type LinkPair struct {
	ID   string `json:"id"`
	TxID string `json:"tx_id"`
	RxID string `json:"rx_id"`
}
