// Package testutil holds deterministic fixtures and assertions shared by
// the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates amplitude*sin(2*pi*freqHz*n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	return Sinusoid(freqHz, sampleRate, amplitude, 0, length)
}

// Sinusoid generates amplitude*sin(2*pi*freqHz*n/sampleRate + phase).
func Sinusoid(freqHz, sampleRate, amplitude, phase float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}

	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude]
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC generates a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Add returns the element-wise sum of equally long signals.
func Add(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}

	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}

	return out
}

// FitTone projects x[from:to] onto sin and cos at freqHz and returns the
// amplitude and phase of the best-fitting amplitude*sin(w*n + phase). The
// window should span a whole number of periods for an unbiased estimate.
func FitTone(x []float64, freqHz, sampleRate float64, from, to int) (amplitude, phase float64) {
	w := 2 * math.Pi * freqHz / sampleRate
	var s, c float64

	for n := from; n < to; n++ {
		s += x[n] * math.Sin(w*float64(n))
		c += x[n] * math.Cos(w*float64(n))
	}

	scale := 2 / float64(to-from)
	s *= scale
	c *= scale

	return math.Hypot(s, c), math.Atan2(c, s)
}
