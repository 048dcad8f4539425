package envelope

// Peak is the instantaneous detection mode: its estimate is the rectified
// sample. It carries no running state, so copies are interchangeable.
type Peak struct {
	rectifier Rectifier
}

// NewPeak returns a Peak mode using r.
func NewPeak(r Rectifier) Peak {
	return Peak{rectifier: r}
}

// FullWavePeak returns a full-wave Peak mode.
func FullWavePeak() Peak { return Peak{rectifier: FullWave} }

// PositiveHalfWavePeak returns a positive half-wave Peak mode.
func PositiveHalfWavePeak() Peak { return Peak{rectifier: PositiveHalfWave} }

// NegativeHalfWavePeak returns a negative half-wave Peak mode.
func NegativeHalfWavePeak() Peak { return Peak{rectifier: NegativeHalfWave} }

// Rectifier returns the rectification policy.
func (p Peak) Rectifier() Rectifier { return p.rectifier }

// Next returns the rectified sample.
func (p Peak) Next(sample float64) float64 {
	return p.rectifier.Rectify(sample)
}

// Clone returns p.
func (p Peak) Clone() Peak { return p }
