package model

// FrequencyBand represents a simple [min,max] GHz band.
type FrequencyBand struct {
	MinGHz float64 `json:"MinGHz"`
	MaxGHz float64 `json:"MaxGHz"`
}

// RadioProfile describes the RF characteristics of a family of radios.
// The link-budget layer uses it to derive path gains, noise floors and
// per-transmitter power bounds.
type RadioProfile struct {
	ID   string `json:"ID"`
	Name string `json:"Name"`

	Band FrequencyBand `json:"Band"`

	// Antenna gains in dBi. Zero values fall back to conservative
	// defaults in the link-budget estimator.
	TxGainDBi float64 `json:"TxGainDBi,omitempty"`
	RxGainDBi float64 `json:"RxGainDBi,omitempty"`

	// NoiseFigureDB raises the receiver's thermal noise floor.
	NoiseFigureDB float64 `json:"NoiseFigureDB,omitempty"`

	// BandwidthMHz sizes the noise floor. 0 = assume 1 MHz.
	BandwidthMHz float64 `json:"BandwidthMHz,omitempty"`

	// MinPowerW/MaxPowerW bound the transmit power of radios using this
	// profile, in watts.
	MinPowerW float64 `json:"MinPowerW,omitempty"`
	MaxPowerW float64 `json:"MaxPowerW,omitempty"`
}

// MidBandGHz returns the band midpoint, falling back to a generic
// Ku/Ka-like 10 GHz when the band is unset.
func (rp *RadioProfile) MidBandGHz() float64 {
	f := (rp.Band.MinGHz + rp.Band.MaxGHz) / 2
	if f <= 0 {
		return 10
	}
	return f
}
