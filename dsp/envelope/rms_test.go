package envelope

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-envelope/internal/testutil"
)

// referenceMeanSquare returns the mean of the squares of the last n samples
// of in, treating samples before the start as silence.
func referenceMeanSquare(in []float64, n int) float64 {
	tail := make([]float64, n)
	for i := range n {
		if j := len(in) - n + i; j >= 0 {
			tail[i] = in[j]
		}
	}
	return floats.Dot(tail, tail) / float64(n)
}

func TestRMSConcreteSequence(t *testing.T) {
	r := NewRMS(4)

	var got []float64
	for _, s := range []float64{1, 1, 1, 1, 0} {
		got = append(got, r.Next(s))
	}

	want := []float64{math.Sqrt(0.25), math.Sqrt(0.5), math.Sqrt(0.75), 1, math.Sqrt(0.75)}
	testutil.RequireSliceNearlyEqual(t, got, want, tol(1e-15))
	assert.InDelta(t, 0.866, got[4], 1e-3)
}

func TestRMSEmptyWindowYieldsZero(t *testing.T) {
	for name, r := range map[string]*RMS{"new": NewRMS(0), "zero value": {}} {
		t.Run(name, func(t *testing.T) {
			for _, s := range []float64{1, -3, 0.5} {
				assert.InDelta(t, 0.0, r.Next(s), 0)
			}
			assert.Equal(t, 0, r.WindowFrames())
			assert.InDelta(t, 0.0, r.MeanSquare(), 0)
		})
	}
}

func TestRMSMatchesReference(t *testing.T) {
	const window = 32
	r := NewRMS(window)
	in := testutil.DeterministicNoise(11, 1, 1000)

	for i, s := range in {
		got := r.Next(s)
		want := math.Sqrt(referenceMeanSquare(in[:i+1], window))
		require.InDeltaf(t, want, got, tol(1e-9), "sample %d", i)
	}
}

func TestRMSNeverNegative(t *testing.T) {
	r := NewRMS(8)
	in := testutil.DeterministicNoise(5, 1e-3, 4000)
	sizes := []int{8, 3, 17, 1, 0, 9, 64}

	out := make([]float64, 0, len(in))
	for i, s := range in {
		if i%500 == 0 {
			r.SetWindowFrames(sizes[(i/500)%len(sizes)])
		}
		out = append(out, r.Next(s))
		require.GreaterOrEqual(t, r.sum, 0.0)
	}

	testutil.RequireNonNegative(t, out)
	testutil.RequireFinite(t, out)
}

func TestRMSResizeToSameSizeIsNoOp(t *testing.T) {
	in := testutil.DeterministicNoise(23, 1, 300)

	a := NewRMS(16)
	b := NewRMS(16)
	for _, s := range in[:100] {
		a.Next(s)
		b.Next(s)
	}

	b.SetWindowFrames(16)
	b.SetWindowFrames(16)

	for _, s := range in[100:] {
		require.Equal(t, a.Next(s), b.Next(s))
	}
}

func TestRMSShrinkKeepsSumConsistent(t *testing.T) {
	in := testutil.DeterministicNoise(31, 1, 200)
	r := NewRMS(16)
	for _, s := range in {
		r.Next(s)
	}

	r.SetWindowFrames(5)
	require.Equal(t, 5, r.WindowFrames())
	assert.InDelta(t, referenceMeanSquare(in, 5), r.MeanSquare(), 1e-12)

	more := testutil.DeterministicNoise(32, 1, 50)
	all := append(append([]float64(nil), in...), more...)
	for i, s := range more {
		got := r.Next(s)
		want := math.Sqrt(referenceMeanSquare(all[:len(in)+i+1], 5))
		require.InDelta(t, want, got, tol(1e-9))
	}
}

func TestRMSGrowPadsWithMeanSquare(t *testing.T) {
	r := NewRMS(2)
	r.Next(1)
	r.Next(1)

	r.SetWindowFrames(4)
	require.Equal(t, 4, r.WindowFrames())
	assert.InDelta(t, 1.0, r.MeanSquare(), 1e-15)

	// The two padding entries are evicted first, then the real squares.
	got := []float64{r.Next(0), r.Next(0), r.Next(0), r.Next(0)}
	want := []float64{math.Sqrt(0.75), math.Sqrt(0.5), math.Sqrt(0.25), 0}
	testutil.RequireSliceNearlyEqual(t, got, want, tol(1e-15))
}

func TestRMSGrowPreservesLevel(t *testing.T) {
	r := NewRMS(4)
	for range 4 {
		r.Next(0.5)
	}

	r.SetWindowFrames(64)
	assert.InDelta(t, 0.5, r.Next(0.5), tol(1e-12))
}

func TestRMSGrowFromEmpty(t *testing.T) {
	r := NewRMS(0)
	r.SetWindowFrames(3)

	assert.InDelta(t, math.Sqrt(1.0/3), r.Next(1), tol(1e-15))
}

func TestRMSReset(t *testing.T) {
	r := NewRMS(4)
	for _, s := range testutil.DeterministicNoise(2, 1, 20) {
		r.Next(s)
	}

	r.Reset()
	assert.Equal(t, 4, r.WindowFrames())
	assert.InDelta(t, 0.0, r.MeanSquare(), 0)
	assert.InDelta(t, 0.5, r.Next(1), tol(1e-15))
}

func TestRMSResync(t *testing.T) {
	const window = 128
	in := testutil.DeterministicNoise(41, 1, 20000)
	r := NewRMS(window)
	for _, s := range in {
		r.Next(s)
	}

	r.Resync()
	assert.InDelta(t, referenceMeanSquare(in, window), r.MeanSquare(), 1e-12)
}

func TestRMSCloneIsIndependent(t *testing.T) {
	r := NewRMS(3)
	r.Next(1)

	c := r.Clone()
	require.InDelta(t, r.MeanSquare(), c.MeanSquare(), 0)

	c.Next(5)
	c.SetWindowFrames(10)

	assert.Equal(t, 3, r.WindowFrames())
	assert.InDelta(t, 1.0/3, r.MeanSquare(), 1e-15)
}

func TestRMSNegativeWindowPanics(t *testing.T) {
	assert.Panics(t, func() { NewRMS(-1) })
	assert.Panics(t, func() { NewRMS(2).SetWindowFrames(-4) })
}

func TestRMSResyncRecoversQuietLevelAfterLoudPassage(t *testing.T) {
	r := NewRMS(4)
	for range 4 {
		r.Next(1e6)
	}
	for range 4 {
		r.Next(1e-3)
	}

	r.Resync()
	assert.InEpsilon(t, 1e-6, r.MeanSquare(), 1e-9)
	assert.InEpsilon(t, 1e-3, r.Next(1e-3), tol(1e-9))
}
