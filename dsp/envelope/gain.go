package envelope

import (
	"fmt"
	"math"
)

// Gain returns the one-pole retention coefficient exp(-1/frames) for a
// smoothing time of frames. The envelope covers ~63% of a step in that many
// frames. A time of 0 yields 0 (the envelope jumps to the estimate).
// Negative or NaN times panic.
func Gain(frames float64) float64 {
	if frames < 0 || math.IsNaN(frames) {
		panic(fmt.Sprintf("envelope: smoothing time must be >= 0 frames: %v", frames))
	}

	if frames == 0 {
		return 0
	}

	return mathExp(-1 / frames)
}
