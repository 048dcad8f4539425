package envelope

// channel is the per-channel running state: the mode's own detector state
// and the last emitted envelope value.
type channel[M Mode] struct {
	mode     M
	envelope float64
}

// next feeds sample through the mode and moves the envelope toward the
// estimate, using the attack gain while rising and the release gain
// otherwise.
func (c *channel[M]) next(sample, attackGain, releaseGain float64) float64 {
	estimate := c.mode.Next(sample)

	gain := releaseGain
	if c.envelope < estimate {
		gain = attackGain
	}

	c.envelope = estimate + gain*(c.envelope-estimate)

	return c.envelope
}

func (c *channel[M]) reset() {
	c.envelope = 0
	if r, ok := any(c.mode).(resetter); ok {
		r.Reset()
	}
}

// Detector is a single-channel attack/release envelope follower over a
// detection mode M. The mode is a type parameter so the per-sample call is
// statically dispatched.
type Detector[M Mode] struct {
	attackGain  float64
	releaseGain float64
	ch          channel[M]
}

// PeakDetector follows the full-wave (or other rectified) peak of a signal.
type PeakDetector = Detector[Peak]

// RMSDetector follows the windowed RMS of a signal.
type RMSDetector = Detector[*RMS]

// New returns a Detector over mode with attack and release times in frames.
// The envelope starts at 0.
func New[M Mode](mode M, attackFrames, releaseFrames float64) *Detector[M] {
	return &Detector[M]{
		attackGain:  Gain(attackFrames),
		releaseGain: Gain(releaseFrames),
		ch:          channel[M]{mode: mode},
	}
}

// NewPeakDetector returns a full-wave peak Detector.
func NewPeakDetector(attackFrames, releaseFrames float64) *PeakDetector {
	return New(FullWavePeak(), attackFrames, releaseFrames)
}

// NewRMSDetector returns an RMS Detector over windowFrames samples.
func NewRMSDetector(windowFrames int, attackFrames, releaseFrames float64) *RMSDetector {
	return New(NewRMS(windowFrames), attackFrames, releaseFrames)
}

// Next consumes the next sample and returns the next envelope value.
func (d *Detector[M]) Next(sample float64) float64 {
	return d.ch.next(sample, d.attackGain, d.releaseGain)
}

// SetAttackFrames sets the attack time in frames. The current envelope is
// left untouched.
func (d *Detector[M]) SetAttackFrames(frames float64) {
	d.attackGain = Gain(frames)
}

// SetReleaseFrames sets the release time in frames. The current envelope is
// left untouched.
func (d *Detector[M]) SetReleaseFrames(frames float64) {
	d.releaseGain = Gain(frames)
}

// SetWindowFrames resizes the analysis window of modes that have one; it
// is a no-op for Peak.
func (d *Detector[M]) SetWindowFrames(n int) {
	if w, ok := any(d.ch.mode).(windowed); ok {
		w.SetWindowFrames(n)
	}
}

// WindowFrames returns the analysis window length, or 0 for modes without a
// window.
func (d *Detector[M]) WindowFrames() int {
	if w, ok := any(d.ch.mode).(windowed); ok {
		return w.WindowFrames()
	}
	return 0
}

// AttackGain returns the one-pole coefficient applied while the estimate rises.
func (d *Detector[M]) AttackGain() float64 { return d.attackGain }

// ReleaseGain returns the one-pole coefficient applied while the estimate
// falls or holds.
func (d *Detector[M]) ReleaseGain() float64 { return d.releaseGain }

// Envelope returns the most recently emitted envelope value.
func (d *Detector[M]) Envelope() float64 { return d.ch.envelope }

// Mode returns the detector's mode.
func (d *Detector[M]) Mode() M { return d.ch.mode }

// Reset returns the envelope to 0 and clears the mode's running state.
func (d *Detector[M]) Reset() {
	d.ch.reset()
}
