package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-envelope/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("sine", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Burst generates a sine gated on for onMs and off for offMs, repeating.
// The gate opens at the first sample.
func (g *Generator) Burst(freqHz, amplitude, onMs, offMs float64, samples int) ([]float64, error) {
	if onMs <= 0 || offMs < 0 {
		return nil, fmt.Errorf("burst gate must have on > 0 and off >= 0 ms: on=%f off=%f", onMs, offMs)
	}
	out, err := g.Sine(freqHz, amplitude, samples)
	if err != nil {
		return nil, err
	}

	on := max(core.MsToWholeFrames(onMs, g.cfg.SampleRate), 1)
	period := on + core.MsToWholeFrames(offMs, g.cfg.SampleRate)
	for i := range out {
		if i%period >= on {
			out[i] = 0
		}
	}
	return out, nil
}

// Step generates silence followed by a constant level starting at atMs.
func (g *Generator) Step(level, atMs float64, samples int) ([]float64, error) {
	if err := g.validate("step", samples); err != nil {
		return nil, err
	}
	if atMs < 0 {
		return nil, fmt.Errorf("step position must be >= 0 ms: %f", atMs)
	}
	out := make([]float64, samples)
	for i := min(core.MsToWholeFrames(atMs, g.cfg.SampleRate), samples); i < samples; i++ {
		out[i] = level
	}
	return out, nil
}

// Square generates a bipolar square wave.
func (g *Generator) Square(freqHz, amplitude float64, samples int) ([]float64, error) {
	out, err := g.Sine(freqHz, 1, samples)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		if v < 0 {
			out[i] = -amplitude
		} else {
			out[i] = amplitude
		}
	}
	return out, nil
}

func (g *Generator) validate(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", kind, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", kind, g.cfg.SampleRate)
	}
	return nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := vecmath.MaxAbs(data)

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
