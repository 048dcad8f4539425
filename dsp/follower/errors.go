package follower

import "errors"

var (
	// ErrNilBuffer is returned when a nil buffer or a buffer without a format is processed.
	ErrNilBuffer = errors.New("follower: nil buffer or buffer format")
	// ErrFrameMisaligned is returned when an interleaved block is not a whole number of frames.
	ErrFrameMisaligned = errors.New("follower: sample count is not a multiple of the channel count")
)
