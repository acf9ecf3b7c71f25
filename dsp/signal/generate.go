// Package signal synthesises deterministic test signals: tones, noise, and
// the signal-plus-interference mixture used to exercise bandstop filters.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-rfi/dsp/core"
	"github.com/cwbudde/algo-rfi/dsp/filter/design"
)

// InterferenceLevel is the amplitude of the interference tone in
// TestSignal relative to the unit-amplitude signal tone.
const InterferenceLevel = 0.5

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

// Sine generates amplitude*sin(2*pi*freqHz*n/fs).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.SinePhase(freqHz, amplitude, 0, samples)
}

// SinePhase generates amplitude*sin(2*pi*freqHz*n/fs + phase).
func (g *Generator) SinePhase(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	if freqHz < 0 || freqHz > g.cfg.Nyquist() {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %g", g.cfg.Nyquist(), freqHz)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
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

// Samples returns int(fs*duration), the length of a signal lasting
// duration seconds.
func (g *Generator) Samples(duration float64) int {
	return int(g.cfg.SampleRate * duration)
}

// TimeAxis returns Samples(duration) evenly spaced instants in
// [0, duration), excluding the endpoint.
func (g *Generator) TimeAxis(duration float64) ([]float64, error) {
	n := g.Samples(duration)
	if n <= 0 {
		return nil, fmt.Errorf("duration %g s at %g Hz yields no samples", duration, g.cfg.SampleRate)
	}

	t := make([]float64, n)
	step := duration / float64(n)

	for i := range t {
		t[i] = float64(i) * step
	}

	return t, nil
}

// TestSignal returns the time axis and
//
//	sin(2*pi*fs*t) + 0.5*sin(2*pi*fi*t)
//
// where fs and fi are the centres of the signal and interference bands.
func (g *Generator) TestSignal(signalBand, interferenceBand design.BandSpec, duration float64) (t, x []float64, err error) {
	if err := signalBand.Validate(g.cfg.SampleRate); err != nil {
		return nil, nil, fmt.Errorf("signal band: %w", err)
	}

	if err := interferenceBand.Validate(g.cfg.SampleRate); err != nil {
		return nil, nil, fmt.Errorf("interference band: %w", err)
	}

	t, err = g.TimeAxis(duration)
	if err != nil {
		return nil, nil, err
	}

	fSig, fInt := signalBand.Mean(), interferenceBand.Mean()
	x = make([]float64, len(t))
	rfi := make([]float64, len(t))

	for i, ti := range t {
		x[i] = math.Sin(2 * math.Pi * fSig * ti)
		rfi[i] = math.Sin(2 * math.Pi * fInt * ti)
	}

	if err := Mix(x, rfi, InterferenceLevel); err != nil {
		return nil, nil, err
	}

	return t, x, nil
}

// Mix adds gain*src to dst in place.
func Mix(dst, src []float64, gain float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("mix length mismatch: %d != %d", len(dst), len(src))
	}

	scaled := make([]float64, len(src))
	vecmath.ScaleBlock(scaled, src, gain)
	vecmath.AddBlockInPlace(dst, scaled)

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

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)

	return out, nil
}
