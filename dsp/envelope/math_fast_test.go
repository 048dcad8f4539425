//go:build fastmath

package envelope

// mathTol is the absolute error mathExp and mathSqrt may add to values of
// order one. algo-approx's balanced precision is good to about 3e-6 relative.
const mathTol = 1e-5
