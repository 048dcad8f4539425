//nolint:funcorder
package follower

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-envelope/dsp/envelope"
)

const (
	minTimeMs     = 0.0
	maxTimeMs     = 10000.0
	minWindowMs   = 0.01
	maxWindowMs   = 1000.0
	maxChannels   = 256
	maxBlockSize  = 1 << 16
	minSampleRate = 1.0
)

// DetectorMode selects the envelope estimate fed to the attack/release stage.
type DetectorMode int

const (
	// DetectorModePeak follows the rectified instantaneous level.
	DetectorModePeak DetectorMode = iota
	// DetectorModeRMS follows the RMS over a sliding window.
	DetectorModeRMS
)

func (m DetectorMode) String() string {
	switch m {
	case DetectorModePeak:
		return "peak"
	case DetectorModeRMS:
		return "rms"
	default:
		return fmt.Sprintf("DetectorMode(%d)", int(m))
	}
}

// tracker is the surface shared by every envelope.MultiChannel instantiation.
type tracker interface {
	Next(ch int, sample float64) float64
	ProcessInterleaved(dst, src []float64) []float64
	Channels() int
	SetChannels(n int)
	SetAttackFrames(frames float64)
	SetReleaseFrames(frames float64)
	SetWindowFrames(n int)
	WindowFrames() int
	Envelope(ch int) float64
	Reset()
}

var (
	_ tracker = (*envelope.MultiChannelPeakDetector)(nil)
	_ tracker = (*envelope.MultiChannelRMSDetector)(nil)
)

// Follower tracks the envelope of a multi-channel stream configured in
// milliseconds. It is not safe for concurrent use.
type Follower struct {
	cfg       config
	det       tracker
	out       audio.FloatBuffer
	outFormat audio.Format
	blockPeak float64
}

// New returns a Follower for the given sample rate. Defaults: stereo,
// full-wave peak detection, 1 ms attack, 100 ms release, 10 ms RMS window.
func New(sampleRate float64, opts ...Option) (*Follower, error) {
	cfg := defaultConfig(sampleRate)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f := &Follower{cfg: cfg}

	attack := core.MsToFrames(cfg.attackMs, cfg.SampleRate)
	release := core.MsToFrames(cfg.releaseMs, cfg.SampleRate)

	switch cfg.mode {
	case DetectorModeRMS:
		f.det = envelope.NewMultiChannelRMS(cfg.windowFrames(), attack, release, cfg.Channels)
	default:
		f.det = envelope.NewMultiChannel(envelope.NewPeak(cfg.rectifier), cfg.Channels, attack, release)
	}

	f.out.Data = make([]float64, 0, cfg.BlockSize*cfg.Channels)
	f.out.Format = &f.outFormat

	return f, nil
}

func (c *config) validate() error {
	err := validateSampleRate(c.SampleRate)
	if err != nil {
		return err
	}

	if c.mode != DetectorModePeak && c.mode != DetectorModeRMS {
		return fmt.Errorf("invalid detector mode: %d", c.mode)
	}

	if c.rectifier < envelope.FullWave || c.rectifier > envelope.NegativeHalfWave {
		return fmt.Errorf("invalid rectifier: %d", c.rectifier)
	}

	if err := validateChannels(c.Channels); err != nil {
		return err
	}

	if c.BlockSize <= 0 || c.BlockSize > maxBlockSize {
		return fmt.Errorf("block size must be in [1, %d]: %d", maxBlockSize, c.BlockSize)
	}

	if err := validateTime("attack", c.attackMs); err != nil {
		return err
	}

	if err := validateTime("release", c.releaseMs); err != nil {
		return err
	}

	return validateWindow(c.windowMs)
}

func (c *config) windowFrames() int {
	return max(core.MsToWholeFrames(c.windowMs, c.SampleRate), 1)
}

// SetSampleRate changes the sample rate and rescales every time constant.
func (f *Follower) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	f.cfg.SampleRate = sampleRate
	f.det.SetAttackFrames(core.MsToFrames(f.cfg.attackMs, sampleRate))
	f.det.SetReleaseFrames(core.MsToFrames(f.cfg.releaseMs, sampleRate))
	f.det.SetWindowFrames(f.cfg.windowFrames())

	return nil
}

// SetAttack sets the attack time in milliseconds.
func (f *Follower) SetAttack(ms float64) error {
	if err := validateTime("attack", ms); err != nil {
		return err
	}

	f.cfg.attackMs = ms
	f.det.SetAttackFrames(core.MsToFrames(ms, f.cfg.SampleRate))

	return nil
}

// SetRelease sets the release time in milliseconds.
func (f *Follower) SetRelease(ms float64) error {
	if err := validateTime("release", ms); err != nil {
		return err
	}

	f.cfg.releaseMs = ms
	f.det.SetReleaseFrames(core.MsToFrames(ms, f.cfg.SampleRate))

	return nil
}

// SetWindow sets the RMS window length in milliseconds. The window is
// always at least one frame. It has no effect in peak mode.
func (f *Follower) SetWindow(ms float64) error {
	if err := validateWindow(ms); err != nil {
		return err
	}

	f.cfg.windowMs = ms
	f.det.SetWindowFrames(f.cfg.windowFrames())

	return nil
}

// SetChannels changes the channel count. New channels continue from the
// state of the last existing one.
func (f *Follower) SetChannels(channels int) error {
	if err := validateChannels(channels); err != nil {
		return err
	}

	f.cfg.Channels = channels
	f.det.SetChannels(channels)

	return nil
}

// SampleRate returns the sample rate in Hz.
func (f *Follower) SampleRate() float64 { return f.cfg.SampleRate }

// Channels returns the number of tracked channels.
func (f *Follower) Channels() int { return f.det.Channels() }

// Mode returns the detector mode chosen at construction.
func (f *Follower) Mode() DetectorMode { return f.cfg.mode }

// Rectifier returns the peak rectification policy.
func (f *Follower) Rectifier() envelope.Rectifier { return f.cfg.rectifier }

// Attack returns the attack time in milliseconds.
func (f *Follower) Attack() float64 { return f.cfg.attackMs }

// Release returns the release time in milliseconds.
func (f *Follower) Release() float64 { return f.cfg.releaseMs }

// Window returns the RMS window length in milliseconds.
func (f *Follower) Window() float64 { return f.cfg.windowMs }

// WindowFrames returns the RMS window length in frames, or 0 in peak mode.
func (f *Follower) WindowFrames() int { return f.det.WindowFrames() }

// Envelope returns the most recent envelope value of channel ch.
func (f *Follower) Envelope(ch int) float64 { return f.det.Envelope(ch) }

// ProcessSample tracks one sample of channel ch. Panics if ch is out of range.
func (f *Follower) ProcessSample(ch int, x float64) float64 {
	return f.det.Next(ch, x)
}

// EnvelopeDB returns the magnitude of channel ch's envelope in dBFS.
func (f *Follower) EnvelopeDB(ch int) float64 {
	return core.LinearToDB(math.Abs(f.det.Envelope(ch)))
}

// Above reports whether the magnitude of channel ch's envelope is at or
// above thresholdDB dBFS.
func (f *Follower) Above(ch int, thresholdDB float64) bool {
	return math.Abs(f.det.Envelope(ch)) >= core.DBToLinear(thresholdDB)
}

// BlockPeak returns the largest envelope magnitude produced by the most
// recent block.
func (f *Follower) BlockPeak() float64 {
	return f.blockPeak
}

// ProcessInterleaved tracks a block of interleaved frames and writes the
// interleaved envelope into dst, reusing its capacity.
func (f *Follower) ProcessInterleaved(dst, src []float64) ([]float64, error) {
	channels := f.det.Channels()
	if len(src)%channels != 0 {
		return dst, fmt.Errorf("%w: %d samples, %d channels", ErrFrameMisaligned, len(src), channels)
	}

	dst = f.det.ProcessInterleaved(dst, src)
	f.blockPeak = vecmath.MaxAbs(dst)

	return dst, nil
}

// ProcessBuffer tracks the envelope of buf. If buf's channel count or sample
// rate differ from the current configuration the Follower adopts them first.
// Sample rates are compared in whole hertz, so a fractional configured rate
// is kept while buffers report its truncated value. On error the
// configuration is left unchanged.
//
// The returned buffer is owned by the Follower and is overwritten by the
// next call.
func (f *Follower) ProcessBuffer(buf *audio.FloatBuffer) (*audio.FloatBuffer, error) {
	if buf == nil || buf.Format == nil {
		return nil, ErrNilBuffer
	}

	channels := f.det.Channels()
	if n := buf.Format.NumChannels; n > 0 {
		if err := validateChannels(n); err != nil {
			return nil, err
		}
		channels = n
	}

	if len(buf.Data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels", ErrFrameMisaligned, len(buf.Data), channels)
	}

	if channels != f.det.Channels() {
		if err := f.SetChannels(channels); err != nil {
			return nil, err
		}
	}

	if sr := buf.Format.SampleRate; sr > 0 && sr != int(f.cfg.SampleRate) {
		if err := f.SetSampleRate(float64(sr)); err != nil {
			return nil, err
		}
	}

	data, err := f.ProcessInterleaved(f.out.Data, buf.Data)
	if err != nil {
		return nil, err
	}

	f.out.Data = data
	f.outFormat.NumChannels = f.det.Channels()
	f.outFormat.SampleRate = int(f.cfg.SampleRate)

	return &f.out, nil
}

// Reset returns every channel's envelope and RMS window to silence.
func (f *Follower) Reset() {
	f.det.Reset()
	f.blockPeak = 0
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate < minSampleRate || !core.IsFinite(sampleRate) {
		return fmt.Errorf("sample rate must be >= %f and finite: %f", minSampleRate, sampleRate)
	}

	return nil
}

func validateTime(name string, ms float64) error {
	if ms < minTimeMs || ms > maxTimeMs || !core.IsFinite(ms) {
		return fmt.Errorf("%s must be in [%f, %f] ms: %f", name, minTimeMs, maxTimeMs, ms)
	}

	return nil
}

func validateWindow(ms float64) error {
	if ms < minWindowMs || ms > maxWindowMs || !core.IsFinite(ms) {
		return fmt.Errorf("rms window must be in [%f, %f] ms: %f", minWindowMs, maxWindowMs, ms)
	}

	return nil
}

func validateChannels(channels int) error {
	if channels <= 0 || channels > maxChannels {
		return fmt.Errorf("channels must be in [1, %d]: %d", maxChannels, channels)
	}

	return nil
}
