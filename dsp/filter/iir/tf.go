package iir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-rfi/internal/polyroot"
)

// ErrInvalidCoefficients is returned for empty, non-finite, or
// unnormalisable (A[0] == 0) coefficient sets.
var ErrInvalidCoefficients = errors.New("iir: invalid coefficients")

// ErrUnstableFilter is returned when a denominator has a root on or
// outside the unit circle.
var ErrUnstableFilter = errors.New("iir: unstable filter")

// TransferFunction is H(z) = B(z)/A(z) with both polynomials in ascending
// powers of z^-1:
//
//	H(z) = (B[0] + B[1]z^-1 + ... + B[M]z^-M) / (A[0] + A[1]z^-1 + ... + A[M]z^-M)
type TransferFunction struct {
	B []float64 // feedforward (numerator)
	A []float64 // feedback (denominator)
}

// Validate checks that both polynomials are present, finite, and that A[0]
// is non-zero.
func (tf TransferFunction) Validate() error {
	if len(tf.B) == 0 || len(tf.A) == 0 {
		return fmt.Errorf("%w: empty numerator or denominator", ErrInvalidCoefficients)
	}

	if tf.A[0] == 0 {
		return fmt.Errorf("%w: a[0] must be non-zero", ErrInvalidCoefficients)
	}

	for i, v := range tf.B {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: b[%d] = %v", ErrInvalidCoefficients, i, v)
		}
	}

	for i, v := range tf.A {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: a[%d] = %v", ErrInvalidCoefficients, i, v)
		}
	}

	return nil
}

// Normalize returns a copy with A[0] == 1 and B, A zero-padded to the same
// length. The receiver must be valid.
func (tf TransferFunction) Normalize() TransferFunction {
	n := max(len(tf.B), len(tf.A))
	out := TransferFunction{
		B: make([]float64, n),
		A: make([]float64, n),
	}

	a0 := tf.A[0]
	for i, v := range tf.B {
		out.B[i] = v / a0
	}

	for i, v := range tf.A {
		out.A[i] = v / a0
	}

	out.A[0] = 1

	return out
}

// Order returns the filter order, max(len(B), len(A)) - 1.
func (tf TransferFunction) Order() int {
	return max(len(tf.B), len(tf.A)) - 1
}

// Len returns max(len(B), len(A)), the number of taps after Normalize.
func (tf TransferFunction) Len() int {
	return max(len(tf.B), len(tf.A))
}

// CheckStable returns an error wrapping ErrUnstableFilter when IsStable
// fails, or the Validate error for malformed coefficients.
func (tf TransferFunction) CheckStable() error {
	if err := tf.Validate(); err != nil {
		return err
	}

	if !tf.IsStable() {
		return fmt.Errorf("%w: denominator has a root on or outside the unit circle", ErrUnstableFilter)
	}

	return nil
}

// Clone returns a deep copy.
func (tf TransferFunction) Clone() TransferFunction {
	return TransferFunction{
		B: append([]float64(nil), tf.B...),
		A: append([]float64(nil), tf.A...),
	}
}

// IsStable reports whether every root of A(z) lies strictly inside the unit
// circle. It runs the Schur-Cohn step-down recursion on the normalised
// denominator: the filter is stable iff every reflection coefficient has
// magnitude below one.
func (tf TransferFunction) IsStable() bool {
	if tf.Validate() != nil {
		return false
	}

	a := make([]float64, len(tf.A))
	for i, v := range tf.A {
		a[i] = v / tf.A[0]
	}

	for m := len(a) - 1; m >= 1; m-- {
		k := a[m]
		if !(math.Abs(k) < 1) {
			return false
		}

		d := 1 - k*k
		next := make([]float64, m)

		for i := range m {
			next[i] = (a[i] - k*a[m-i]) / d
		}

		a = next
	}

	return true
}

// Poles returns the roots of A(z).
func (tf TransferFunction) Poles() ([]complex128, error) {
	return polyroot.Roots(tf.A)
}

// Zeros returns the roots of B(z).
func (tf TransferFunction) Zeros() ([]complex128, error) {
	return polyroot.Roots(tf.B)
}

// DCGain returns H(z=1).
func (tf TransferFunction) DCGain() float64 {
	return sum(tf.B) / sum(tf.A)
}

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}

	return s
}
