package iir

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(e^jw) at freqHz.
func (tf TransferFunction) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	zinv := cmplx.Exp(complex(0, -w))

	return horner(tf.B, zinv) / horner(tf.A, zinv)
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (tf TransferFunction) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(tf.Response(freqHz, sampleRate)))
}

// Phase returns arg H at freqHz in radians.
func (tf TransferFunction) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(tf.Response(freqHz, sampleRate))
}

// horner evaluates c[0] + c[1]x + ... + c[n]x^n.
func horner(c []float64, x complex128) complex128 {
	v := complex(0, 0)
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + complex(c[i], 0)
	}

	return v
}
