package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-envelope/internal/testutil"
)

func TestGain(t *testing.T) {
	assert.InDelta(t, math.Exp(-1), Gain(1), tol(1e-15))
	assert.InDelta(t, math.Exp(-0.01), Gain(100), tol(1e-15))
	assert.InDelta(t, 0.0, Gain(0), 0)
	assert.InDelta(t, 1.0, Gain(math.Inf(1)), 0)

	assert.Panics(t, func() { Gain(-1) })
	assert.Panics(t, func() { Gain(math.NaN()) })
}

func TestDetectorStartsAtEquilibrium(t *testing.T) {
	d := NewPeakDetector(4, 4)
	assert.InDelta(t, 0.0, d.Envelope(), 0)
	assert.InDelta(t, 0.0, d.Next(0), 0)
}

func TestDetectorApproachesHeldEstimate(t *testing.T) {
	d := NewPeakDetector(10, 25)

	rise := make([]float64, 200)
	for i := range rise {
		rise[i] = d.Next(0.8)
	}
	testutil.RequireApproaches(t, 0, rise, 0.8)

	fall := make([]float64, 200)
	for i := range fall {
		fall[i] = d.Next(-0.1)
	}
	testutil.RequireApproaches(t, rise[len(rise)-1], fall, 0.1)
}

func TestDetectorAttackReleaseAsymmetry(t *testing.T) {
	d := NewPeakDetector(1, 1e9)
	require.InDelta(t, math.Exp(-1), d.AttackGain(), tol(1e-15))

	e1 := d.Next(1)
	e2 := d.Next(1)
	assert.InDelta(t, 1-math.Exp(-1), e1, tol(1e-12))
	assert.InDelta(t, 1-math.Exp(-2), e2, tol(1e-12))

	// Release is near-frozen: dropping the estimate barely moves the envelope.
	e3 := d.Next(0)
	assert.Less(t, e3, e2)
	assert.InDelta(t, e2, e3, 1e-8)
}

func TestDetectorZeroTimesFollowEstimate(t *testing.T) {
	d := NewPeakDetector(0, 0)
	in := testutil.DeterministicNoise(9, 1, 128)
	for _, s := range in {
		require.Equal(t, math.Abs(s), d.Next(s))
	}
}

func TestDetectorSetTimes(t *testing.T) {
	d := NewPeakDetector(2, 3)
	d.Next(1)
	env := d.Envelope()

	d.SetReleaseFrames(50)
	assert.InDelta(t, Gain(50), d.ReleaseGain(), 0)
	assert.InDelta(t, Gain(2), d.AttackGain(), 0, "release setter must not touch the attack gain")

	d.SetAttackFrames(7)
	assert.InDelta(t, Gain(7), d.AttackGain(), 0)
	assert.InDelta(t, Gain(50), d.ReleaseGain(), 0)

	assert.InDelta(t, env, d.Envelope(), 0, "setters must not alter the envelope")
}

func TestRMSDetector(t *testing.T) {
	d := NewRMSDetector(4, 0, 0)
	require.Equal(t, 4, d.WindowFrames())

	var got []float64
	for _, s := range []float64{1, 1, 1, 1, 0} {
		got = append(got, d.Next(s))
	}
	want := []float64{0.5, math.Sqrt(0.5), math.Sqrt(0.75), 1, math.Sqrt(0.75)}
	testutil.RequireSliceNearlyEqual(t, got, want, tol(1e-15))

	d.SetWindowFrames(8)
	assert.Equal(t, 8, d.WindowFrames())
	assert.Equal(t, 8, d.Mode().WindowFrames())
}

func TestPeakDetectorHasNoWindow(t *testing.T) {
	d := NewPeakDetector(1, 1)
	d.SetWindowFrames(32)
	assert.Equal(t, 0, d.WindowFrames())
}

func TestDetectorCustomRectifier(t *testing.T) {
	d := New(PositiveHalfWavePeak(), 0, 0)
	assert.InDelta(t, 0.0, d.Next(-0.4), 0)
	assert.InDelta(t, 0.4, d.Next(0.4), 0)
}

func TestDetectorReset(t *testing.T) {
	d := NewRMSDetector(8, 2, 2)
	for _, s := range testutil.DeterministicNoise(4, 1, 64) {
		d.Next(s)
	}

	d.Reset()
	assert.InDelta(t, 0.0, d.Envelope(), 0)
	assert.InDelta(t, 0.0, d.Mode().MeanSquare(), 0)
	assert.Equal(t, 8, d.WindowFrames())

	p := NewPeakDetector(2, 2)
	p.Next(1)
	p.Reset()
	assert.InDelta(t, 0.0, p.Envelope(), 0)
}

func TestDetectorSteadyStateDoesNotAllocate(t *testing.T) {
	d := NewRMSDetector(256, 10, 100)
	in := testutil.DeterministicSine(440, 48000, 0.5, 512)

	allocs := testing.AllocsPerRun(10, func() {
		for _, s := range in {
			d.Next(s)
		}
	})
	assert.Zero(t, allocs)
}
