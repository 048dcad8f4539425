package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range got {
		require.InDeltaf(t, want[i], got[i], eps, "index %d", i)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "index %d: non-finite value %v", i, v)
	}
}

// RequireNonNegative fails t if any element is below zero.
func RequireNonNegative(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		require.GreaterOrEqualf(t, v, 0.0, "index %d", i)
	}
}

// RequireApproaches fails t unless every step of seq moves strictly closer to
// target without crossing it, starting from start. Steps that already sit on
// target are accepted.
func RequireApproaches(t testing.TB, start float64, seq []float64, target float64) {
	t.Helper()
	prev := start
	for i, v := range seq {
		if v == target && prev == target {
			continue
		}
		require.Lessf(t, math.Abs(v-target), math.Abs(prev-target), "step %d did not approach %v: %v -> %v", i, target, prev, v)
		require.Falsef(t, (prev-target)*(v-target) < 0, "step %d overshot %v: %v -> %v", i, target, prev, v)
		prev = v
	}
}
