package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/algo-envelope/internal/testutil"
)

func TestFullWavePeakSequence(t *testing.T) {
	p := FullWavePeak()

	var got []float64
	for _, s := range []float64{-0.5, 0.3, -0.9} {
		got = append(got, p.Next(s))
	}

	assert.Equal(t, []float64{0.5, 0.3, 0.9}, got)
}

func TestFullWavePeakIsStateless(t *testing.T) {
	p := FullWavePeak()
	in := testutil.DeterministicNoise(3, 1, 256)

	for i := len(in) - 1; i >= 0; i-- {
		assert.Equal(t, math.Abs(in[i]), p.Next(in[i]))
	}
}

func TestPeakConstructors(t *testing.T) {
	assert.Equal(t, FullWave, FullWavePeak().Rectifier())
	assert.Equal(t, PositiveHalfWave, PositiveHalfWavePeak().Rectifier())
	assert.Equal(t, NegativeHalfWave, NegativeHalfWavePeak().Rectifier())
	assert.Equal(t, NewPeak(NegativeHalfWave), NegativeHalfWavePeak().Clone())

	assert.InDelta(t, 0.0, PositiveHalfWavePeak().Next(-1), 0)
	assert.InDelta(t, -1.0, NegativeHalfWavePeak().Next(-1), 0)
}
