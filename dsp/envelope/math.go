//go:build !fastmath

package envelope

import "math"

func mathExp(x float64) float64 {
	return math.Exp(x)
}

func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}
