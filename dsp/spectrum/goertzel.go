package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT term at an arbitrary frequency.
//
// The analyzer accumulates every processed sample; Power and Magnitude
// describe the block seen since the last Reset. A block spanning a whole
// number of periods of the target frequency avoids leakage.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates a new Goertzel analyzer for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.n++
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X(f)|^2 over the processed block.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X(f)|.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Amplitude returns the amplitude of a sine at the target frequency that
// would produce Magnitude over the processed block: 2|X|/N, or |X|/N at
// DC and Nyquist.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	scale := 2.0
	if g.frequency == 0 || g.frequency == g.sampleRate/2 {
		scale = 1
	}

	return scale * g.Magnitude() / float64(g.n)
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude returns the amplitude of the freqHz component of x.
func ToneAmplitude(x []float64, freqHz, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(x)

	return g.Amplitude(), nil
}
