package follower

import (
	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-envelope/dsp/envelope"
)

const (
	defaultAttackMs  = 1.0
	defaultReleaseMs = 100.0
	defaultWindowMs  = 10.0
)

type config struct {
	core.ProcessorConfig
	mode      DetectorMode
	rectifier envelope.Rectifier
	attackMs  float64
	releaseMs float64
	windowMs  float64
}

func defaultConfig(sampleRate float64) config {
	cfg := config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		mode:            DetectorModePeak,
		rectifier:       envelope.FullWave,
		attackMs:        defaultAttackMs,
		releaseMs:       defaultReleaseMs,
		windowMs:        defaultWindowMs,
	}
	cfg.SampleRate = sampleRate
	return cfg
}

// Option configures a Follower at construction. Values are validated by New.
type Option func(*config)

// WithMode selects peak or RMS detection.
func WithMode(mode DetectorMode) Option {
	return func(cfg *config) { cfg.mode = mode }
}

// WithRectifier selects the peak rectification policy. RMS detection
// ignores it.
func WithRectifier(r envelope.Rectifier) Option {
	return func(cfg *config) { cfg.rectifier = r }
}

// WithChannels sets the initial channel count.
func WithChannels(channels int) Option {
	return func(cfg *config) { cfg.Channels = channels }
}

// WithBlockSize presizes the output buffer for blocks of the given number of frames.
func WithBlockSize(frames int) Option {
	return func(cfg *config) { cfg.BlockSize = frames }
}

// WithAttack sets the attack time in milliseconds.
func WithAttack(ms float64) Option {
	return func(cfg *config) { cfg.attackMs = ms }
}

// WithRelease sets the release time in milliseconds.
func WithRelease(ms float64) Option {
	return func(cfg *config) { cfg.releaseMs = ms }
}

// WithWindow sets the RMS window length in milliseconds.
func WithWindow(ms float64) Option {
	return func(cfg *config) { cfg.windowMs = ms }
}
