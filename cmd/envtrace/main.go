// Command envtrace runs a synthetic test signal through an envelope follower
// and prints the envelope as a table.
//
// Usage:
//
//	envtrace [flags]
//
// Examples:
//
//	envtrace -signal burst -attack 1 -release 50
//	envtrace -mode rms -window 20 -signal sine -freq 100 -db
//	envtrace -rect positive -signal square -channels 2 -every 48
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-envelope/dsp/core"
	"github.com/cwbudde/algo-envelope/dsp/envelope"
	"github.com/cwbudde/algo-envelope/dsp/follower"
	"github.com/cwbudde/algo-envelope/dsp/signal"
)

const blockFrames = 256

var modes = map[string]follower.DetectorMode{
	"peak": follower.DetectorModePeak,
	"rms":  follower.DetectorModeRMS,
}

var rectifiers = map[string]envelope.Rectifier{
	"full":     envelope.FullWave,
	"positive": envelope.PositiveHalfWave,
	"negative": envelope.NegativeHalfWave,
}

type options struct {
	mode     string
	rect     string
	rate     float64
	channels int
	attack   float64
	release  float64
	window   float64
	signal   string
	freq     float64
	amp      float64
	frames   int
	every    int
	seed     int64
	db       bool
	floor    float64
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("envtrace: ")

	var o options
	flag.StringVar(&o.mode, "mode", "peak", "detector mode: peak or rms")
	flag.StringVar(&o.rect, "rect", "full", "peak rectifier: full, positive or negative")
	flag.Float64Var(&o.rate, "rate", 48000, "sample rate in Hz")
	flag.IntVar(&o.channels, "channels", 1, "number of channels")
	flag.Float64Var(&o.attack, "attack", 1, "attack time in ms")
	flag.Float64Var(&o.release, "release", 100, "release time in ms")
	flag.Float64Var(&o.window, "window", 10, "RMS window in ms")
	flag.StringVar(&o.signal, "signal", "burst", "test signal: sine, noise, burst, step or square")
	flag.Float64Var(&o.freq, "freq", 440, "test signal frequency in Hz")
	flag.Float64Var(&o.amp, "amp", 0.8, "test signal amplitude")
	flag.IntVar(&o.frames, "frames", 4800, "number of frames to generate")
	flag.IntVar(&o.every, "every", 240, "print every n-th frame")
	flag.Int64Var(&o.seed, "seed", 1, "noise seed")
	flag.BoolVar(&o.db, "db", false, "print the envelope in dBFS")
	flag.Float64Var(&o.floor, "floor", -120, "lowest level printed with -db, in dBFS")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: envtrace [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Traces the envelope of a synthetic signal.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if o.every <= 0 {
		log.Fatalf("-every must be positive: %d", o.every)
	}

	f, err := newFollower(o)
	if err != nil {
		log.Fatal(err)
	}

	src, err := generate(o)
	if err != nil {
		log.Fatal(err)
	}

	if err := trace(os.Stdout, f, src, o); err != nil {
		log.Fatal(err)
	}
}

func newFollower(o options) (*follower.Follower, error) {
	mode, ok := modes[strings.ToLower(o.mode)]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", o.mode)
	}
	rect, ok := rectifiers[strings.ToLower(o.rect)]
	if !ok {
		return nil, fmt.Errorf("unknown rectifier %q", o.rect)
	}

	return follower.New(o.rate,
		follower.WithMode(mode),
		follower.WithRectifier(rect),
		follower.WithChannels(o.channels),
		follower.WithBlockSize(blockFrames),
		follower.WithAttack(o.attack),
		follower.WithRelease(o.release),
		follower.WithWindow(o.window),
	)
}

// generate returns o.channels interleaved copies of the test signal. Noise
// uses a different seed per channel.
func generate(o options) ([]float64, error) {
	if o.channels <= 0 {
		return nil, fmt.Errorf("channels must be positive: %d", o.channels)
	}

	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(o.rate), core.WithChannels(o.channels)},
		signal.WithSeed(o.seed),
	)

	out := make([]float64, o.frames*o.channels)
	for ch := range o.channels {
		g.SetSeed(o.seed + int64(ch))

		var (
			mono []float64
			err  error
		)
		switch strings.ToLower(o.signal) {
		case "sine":
			mono, err = g.Sine(o.freq, o.amp, o.frames)
		case "noise":
			mono, err = g.WhiteNoise(o.amp, o.frames)
		case "burst":
			mono, err = g.Burst(o.freq, o.amp, 20, 30, o.frames)
		case "step":
			mono, err = g.Step(o.amp, 10, o.frames)
		case "square":
			mono, err = g.Square(o.freq, o.amp, o.frames)
		default:
			return nil, fmt.Errorf("unknown signal %q", o.signal)
		}
		if err != nil {
			return nil, err
		}

		for i, v := range mono {
			out[i*o.channels+ch] = v
		}
	}

	return out, nil
}

func trace(w io.Writer, f *follower.Follower, src []float64, o options) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "frame\tms\tinput\t")
	for ch := range o.channels {
		fmt.Fprintf(tw, "env[%d]\t", ch)
	}
	fmt.Fprintln(tw)

	buf := &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: o.channels, SampleRate: int(o.rate)},
	}

	step := blockFrames * o.channels
	frame := 0
	for start := 0; start < len(src); start += step {
		buf.Data = src[start:min(start+step, len(src))]

		env, err := f.ProcessBuffer(buf)
		if err != nil {
			return err
		}

		for i := 0; i < env.NumFrames(); i++ {
			if frame%o.every == 0 {
				fmt.Fprintf(tw, "%d\t%.2f\t%+.4f\t", frame, core.FramesToMs(float64(frame), o.rate), buf.Data[i*o.channels])
				for ch := range o.channels {
					fmt.Fprintf(tw, "%s\t", formatLevel(env.Data[i*o.channels+ch], o))
				}
				fmt.Fprintln(tw)
			}
			frame++
		}
	}

	fmt.Fprintf(tw, "\nblock peak\t%s\t\n", formatLevel(f.BlockPeak(), o))

	return tw.Flush()
}

func formatLevel(v float64, o options) string {
	if !o.db {
		return fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("%.1f dB", core.Clamp(core.LinearToDB(math.Abs(v)), o.floor, math.Inf(1)))
}
