package spectrum

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-rfi/dsp/core"
	"github.com/cwbudde/algo-rfi/dsp/window"
)

// floorDB is reported for empty bins.
const floorDB = -300

// Spectrum is a single-sided amplitude spectrum.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	// Amplitude holds FFTSize/2+1 bins from DC to Nyquist.
	Amplitude []float64
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	fftSize int
	window  window.Type
}

// WithFFTSize sets the transform length. It must be a power of two no
// shorter than the input. Zero selects the next power of two.
func WithFFTSize(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.fftSize = n
		}
	}
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

// Analyze returns the amplitude spectrum of x. The window is normalised by
// its coherent gain, so leakage aside a sine of amplitude A at a bin
// centre reads A.
func Analyze(x []float64, sampleRate float64, opts ...Option) (Spectrum, error) {
	if len(x) == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: input must not be empty")
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	cfg := config{window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size := cfg.fftSize
	if size == 0 {
		size = NextPowerOfTwo(len(x))
	}

	if size < len(x) || size&(size-1) != 0 {
		return Spectrum{}, fmt.Errorf("spectrum: fft size %d must be a power of two >= %d", size, len(x))
	}

	coeffs := window.Generate(cfg.window, len(x), window.WithPeriodic())

	windowed, err := window.ApplyCoefficients(x, coeffs)
	if err != nil {
		return Spectrum{}, err
	}

	in := make([]complex128, size)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft: %w", err)
	}

	amp := Magnitude(out[:size/2+1])
	gain := window.CoherentGain(coeffs) * float64(len(x))

	for k := range amp {
		scale := 2 / gain
		if k == 0 || k == size/2 {
			scale = 1 / gain
		}

		amp[k] *= scale
	}

	return Spectrum{SampleRate: sampleRate, FFTSize: size, Amplitude: amp}, nil
}

// BinWidth returns the frequency spacing of the bins in Hz.
func (s Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.FFTSize)
}

// Frequency returns the centre frequency of bin k.
func (s Spectrum) Frequency(k int) float64 {
	return float64(k) * s.BinWidth()
}

// Bin returns the bin nearest to freqHz, clamped to the valid range.
func (s Spectrum) Bin(freqHz float64) int {
	k := int(math.Round(freqHz / s.BinWidth()))

	return max(0, min(k, len(s.Amplitude)-1))
}

// At returns the amplitude of the bin nearest to freqHz.
func (s Spectrum) At(freqHz float64) float64 {
	if len(s.Amplitude) == 0 {
		return 0
	}

	return s.Amplitude[s.Bin(freqHz)]
}

// DB returns the amplitudes in dB, floored at -300 dB.
func (s Spectrum) DB() []float64 {
	out := make([]float64, len(s.Amplitude))
	for i, a := range s.Amplitude {
		out[i] = math.Max(core.LinearToDB(a), floorDB)
	}

	return out
}

// Peak returns the strongest bin between lowHz and highHz inclusive. ok is
// false when the range holds no bin.
func (s Spectrum) Peak(lowHz, highHz float64) (freqHz, amplitude float64, ok bool) {
	if len(s.Amplitude) == 0 || lowHz > highHz {
		return 0, 0, false
	}

	lo := max(0, int(math.Ceil(lowHz/s.BinWidth())))
	hi := min(len(s.Amplitude)-1, int(math.Floor(highHz/s.BinWidth())))

	best := -1
	for k := lo; k <= hi; k++ {
		if best < 0 || s.Amplitude[k] > s.Amplitude[best] {
			best = k
		}
	}

	if best < 0 {
		return 0, 0, false
	}

	return s.Frequency(best), s.Amplitude[best], true
}
