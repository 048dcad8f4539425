//go:build !fastmath

package envelope

// mathTol is the absolute error mathExp and mathSqrt may add to values of
// order one.
const mathTol = 0.0
