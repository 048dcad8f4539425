package envelope

import (
	"fmt"

	"github.com/cwbudde/algo-envelope/dsp/core"
)

// MultiChannel runs one independent envelope follower per channel. All
// channels share the attack/release gains and window length; each owns its
// mode state and envelope.
type MultiChannel[M Cloner[M]] struct {
	attackGain  float64
	releaseGain float64
	channels    []channel[M]
}

// MultiChannelPeakDetector follows the peak envelope of every channel.
type MultiChannelPeakDetector = MultiChannel[Peak]

// MultiChannelRMSDetector follows the windowed RMS envelope of every channel.
type MultiChannelRMSDetector = MultiChannel[*RMS]

// NewMultiChannel returns a detector with the given number of channels.
// The first channel uses mode, the others clones of it. Panics if channels
// is not positive.
func NewMultiChannel[M Cloner[M]](mode M, channels int, attackFrames, releaseFrames float64) *MultiChannel[M] {
	mustPositiveChannels(channels)

	m := &MultiChannel[M]{
		attackGain:  Gain(attackFrames),
		releaseGain: Gain(releaseFrames),
		channels:    make([]channel[M], 1, channels),
	}
	m.channels[0] = channel[M]{mode: mode}
	m.SetChannels(channels)

	return m
}

// NewMultiChannelPeak returns a full-wave peak detector with the given
// number of channels.
func NewMultiChannelPeak(attackFrames, releaseFrames float64, channels int) *MultiChannelPeakDetector {
	return NewMultiChannel(FullWavePeak(), channels, attackFrames, releaseFrames)
}

// NewMultiChannelRMS returns an RMS detector with the given number of
// channels, each with its own window of windowFrames samples.
func NewMultiChannelRMS(windowFrames int, attackFrames, releaseFrames float64, channels int) *MultiChannelRMSDetector {
	return NewMultiChannel(NewRMS(windowFrames), channels, attackFrames, releaseFrames)
}

// Next consumes the next sample of channel ch and returns that channel's
// next envelope value. Panics if ch is out of range.
func (m *MultiChannel[M]) Next(ch int, sample float64) float64 {
	if ch < 0 || ch >= len(m.channels) {
		panic(fmt.Sprintf("envelope: channel index %d out of range [0, %d)", ch, len(m.channels)))
	}
	return m.channels[ch].next(sample, m.attackGain, m.releaseGain)
}

// NextFrame consumes one sample per channel and writes the envelope frame
// into dst, reusing its capacity. Panics if len(frame) != Channels().
func (m *MultiChannel[M]) NextFrame(dst, frame []float64) []float64 {
	if len(frame) != len(m.channels) {
		panic(fmt.Sprintf("envelope: frame has %d samples, want %d", len(frame), len(m.channels)))
	}

	dst = core.EnsureLen(dst, len(frame))
	for i, s := range frame {
		dst[i] = m.channels[i].next(s, m.attackGain, m.releaseGain)
	}

	return dst
}

// ProcessInterleaved runs a block of interleaved frames through the
// detector and writes interleaved envelope values into dst, reusing its
// capacity. Panics if len(src) is not a multiple of Channels().
func (m *MultiChannel[M]) ProcessInterleaved(dst, src []float64) []float64 {
	n := len(m.channels)
	if len(src)%n != 0 {
		panic(fmt.Sprintf("envelope: %d interleaved samples do not divide into %d channels", len(src), n))
	}

	dst = core.EnsureLen(dst, len(src))
	for i := 0; i < len(src); i += n {
		for ch := range n {
			dst[i+ch] = m.channels[ch].next(src[i+ch], m.attackGain, m.releaseGain)
		}
	}

	return dst
}

// Channels returns the number of channels.
func (m *MultiChannel[M]) Channels() int {
	return len(m.channels)
}

// SetChannels changes the number of channels. Shrinking drops trailing
// channels. Growing fills each new slot with a clone of the last channel,
// window contents and envelope included, so new channels start caught up
// instead of attacking from silence. Panics if n is not positive.
func (m *MultiChannel[M]) SetChannels(n int) {
	mustPositiveChannels(n)

	length := len(m.channels)

	switch {
	case n == length:
		return
	case n < length:
		clear(m.channels[n:])
		m.channels = m.channels[:n]
	default:
		last := m.channels[length-1]
		for range n - length {
			m.channels = append(m.channels, channel[M]{
				mode:     last.mode.Clone(),
				envelope: last.envelope,
			})
		}
	}
}

// SetWindowFrames resizes every channel's analysis window. It is a no-op
// for modes without a window.
func (m *MultiChannel[M]) SetWindowFrames(n int) {
	for i := range m.channels {
		if w, ok := any(m.channels[i].mode).(windowed); ok {
			w.SetWindowFrames(n)
		}
	}
}

// WindowFrames returns the shared analysis window length, or 0 for modes
// without a window.
func (m *MultiChannel[M]) WindowFrames() int {
	if w, ok := any(m.channels[0].mode).(windowed); ok {
		return w.WindowFrames()
	}
	return 0
}

// SetAttackFrames sets the shared attack time in frames.
func (m *MultiChannel[M]) SetAttackFrames(frames float64) {
	m.attackGain = Gain(frames)
}

// SetReleaseFrames sets the shared release time in frames.
func (m *MultiChannel[M]) SetReleaseFrames(frames float64) {
	m.releaseGain = Gain(frames)
}

// AttackGain returns the shared attack coefficient.
func (m *MultiChannel[M]) AttackGain() float64 { return m.attackGain }

// ReleaseGain returns the shared release coefficient.
func (m *MultiChannel[M]) ReleaseGain() float64 { return m.releaseGain }

// Envelope returns the most recent envelope value of channel ch.
func (m *MultiChannel[M]) Envelope(ch int) float64 {
	return m.channels[ch].envelope
}

// Reset returns every channel to silence.
func (m *MultiChannel[M]) Reset() {
	for i := range m.channels {
		m.channels[i].reset()
	}
}

func mustPositiveChannels(n int) {
	if n <= 0 {
		panic(fmt.Sprintf("envelope: channel count must be > 0: %d", n))
	}
}
