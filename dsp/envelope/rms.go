package envelope

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-envelope/dsp/buffer"
)

// RMS tracks the root mean square of the most recent window of samples.
//
// The window holds squared samples oldest-first; sum is kept equal to the
// window total by subtracting evicted squares and adding new ones. sum is
// clamped at 0 so rounding can never push the mean negative.
//
// The running sum keeps the rounding error of every square it has seen. After
// a loud passage the error can swamp much quieter material (a window of 1e6
// samples followed by 1e-3 samples reports about half the true level), so
// hosts tracking signals with a wide dynamic range should call Resync
// periodically, e.g. once per block or after each window length of input.
//
// The zero value is an RMS with an empty window, which always yields 0.
type RMS struct {
	window buffer.Ring
	sum    float64
}

// NewRMS returns an RMS over windowFrames samples, primed with silence.
// A window of 0 frames is valid and always yields 0.
func NewRMS(windowFrames int) *RMS {
	if windowFrames < 0 {
		panic(fmt.Sprintf("envelope: rms window must be >= 0: %d", windowFrames))
	}
	return &RMS{window: *buffer.NewRing(windowFrames)}
}

// Next slides the window by one sample and returns the RMS of its contents.
func (r *RMS) Next(sample float64) float64 {
	n := r.window.Len()
	if n == 0 {
		return 0
	}

	r.popFront()

	square := sample * sample
	r.window.PushBack(square)
	r.sum += square

	mean := r.sum / float64(n)
	if mean <= 0 {
		return 0
	}

	return mathSqrt(mean)
}

// WindowFrames returns the current window length.
func (r *RMS) WindowFrames() int {
	return r.window.Len()
}

// SetWindowFrames resizes the window to n frames.
//
// Shrinking evicts the oldest squares. Growing inserts n-len entries at the
// old end of the window, each equal to the current mean square, so the
// reported level does not dip and the padding is the first to be evicted.
func (r *RMS) SetWindowFrames(n int) {
	if n < 0 {
		panic(fmt.Sprintf("envelope: rms window must be >= 0: %d", n))
	}

	length := r.window.Len()

	switch {
	case n == length:
		return
	case n < length:
		for range length - n {
			r.popFront()
		}
	default:
		pad := r.MeanSquare()
		r.window.Grow(n)
		for range n - length {
			r.window.PushFront(pad)
			r.sum += pad
		}
	}
}

// MeanSquare returns the mean of the squared samples in the window, or 0 for
// an empty window.
func (r *RMS) MeanSquare() float64 {
	n := r.window.Len()
	if n == 0 {
		return 0
	}
	return r.sum / float64(n)
}

// Reset zeroes every window entry and the running sum. The window length is
// unchanged.
func (r *RMS) Reset() {
	r.window.Zero()
	r.sum = 0
}

// Resync recomputes the running sum from the window contents, discarding any
// accumulated rounding drift. It is linear in the window length.
func (r *RMS) Resync() {
	a, b := r.window.Segments()
	r.sum = max(vecmath.Sum(a)+vecmath.Sum(b), 0)
}

// Clone returns an independent copy of r, window contents included.
func (r *RMS) Clone() *RMS {
	return &RMS{window: *r.window.Copy(), sum: r.sum}
}

func (r *RMS) popFront() {
	r.sum -= r.window.PopFront()
	if r.sum < 0 {
		r.sum = 0
	}
}
