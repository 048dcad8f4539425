package envelope

import (
	"fmt"
	"math"
)

// Rectifier selects how a signed sample is turned into a magnitude.
type Rectifier int

const (
	// FullWave yields the absolute value of the sample.
	FullWave Rectifier = iota
	// PositiveHalfWave passes non-negative samples and maps the rest to 0.
	PositiveHalfWave
	// NegativeHalfWave passes non-positive samples and maps the rest to 0.
	NegativeHalfWave
)

// Rectify applies the rectification policy to sample.
//
// NaN input propagates to the output; callers should not feed NaN.
func (r Rectifier) Rectify(sample float64) float64 {
	switch r {
	case PositiveHalfWave:
		if sample < 0 {
			return 0
		}
		return sample
	case NegativeHalfWave:
		if sample > 0 {
			return 0
		}
		return sample
	default:
		return math.Abs(sample)
	}
}

func (r Rectifier) String() string {
	switch r {
	case FullWave:
		return "full-wave"
	case PositiveHalfWave:
		return "positive-half-wave"
	case NegativeHalfWave:
		return "negative-half-wave"
	default:
		return fmt.Sprintf("Rectifier(%d)", int(r))
	}
}
