package core

import "math"

// MsToFrames converts a duration in milliseconds to a (fractional) number of
// frames at sampleRate.
func MsToFrames(ms, sampleRate float64) float64 {
	return ms * 0.001 * sampleRate
}

// FramesToMs converts a number of frames at sampleRate to milliseconds.
// Returns 0 for a non-positive sample rate.
func FramesToMs(frames, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return frames * 1000 / sampleRate
}

// MsToWholeFrames converts milliseconds to a rounded, non-negative frame count.
func MsToWholeFrames(ms, sampleRate float64) int {
	return max(int(math.Round(MsToFrames(ms, sampleRate))), 0)
}
