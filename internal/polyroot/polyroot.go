// Package polyroot provides polynomial root finding and expansion helpers
// shared by the filter design and runtime packages.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has no leading
// coefficient or the iteration fails to converge.
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Roots returns the roots of a real polynomial given in descending power
// order: c[0]*z^n + c[1]*z^(n-1) + ... + c[n]. Leading zeros are skipped.
//
// A digital filter polynomial 1 + a1*z^-1 + ... + an*z^-n has the same
// coefficient order once multiplied by z^n, so a denominator slice can be
// passed as is.
func Roots(c []float64) ([]complex128, error) {
	start := 0
	for start < len(c) && c[start] == 0 {
		start++
	}

	c = c[start:]
	if len(c) == 0 {
		return nil, ErrDegeneratePolynomial
	}

	if len(c) == 1 {
		return []complex128{}, nil
	}

	coeff := make([]complex128, len(c))
	for i, v := range c {
		coeff[i] = complex(v, 0)
	}

	return DurandKerner(coeff)
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration. Coefficients are in descending
// power order.
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 1.0
	for i := 1; i <= n; i++ {
		radius = math.Max(radius, cmplx.Abs(norm[i]))
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = cmplx.Rect(r, angle)
	}

	const (
		maxIter = 1000
		tol     = 1e-13
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)
			for j := range n {
				if i != j {
					den *= roots[i] - roots[j]
				}
			}

			if den == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den
			roots[i] -= delta
			maxDelta = math.Max(maxDelta, cmplx.Abs(delta))
		}

		if maxDelta < tol {
			return roots, nil
		}
	}

	for _, r := range roots {
		if cmplx.Abs(PolyEval(norm, r)) > 1e-6 {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

// PolyEval evaluates a descending-order polynomial at x (Horner).
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Quadratic returns the real polynomial 1 - (r1+r2)x + r1*r2*x^2 for a
// root pair whose sum and product are real: a conjugate pair or two real
// roots. In z^-1 form these are the taps of (1 - r1*z^-1)(1 - r2*z^-1).
// Imaginary residue of the sum and product is discarded.
func Quadratic(r1, r2 complex128) [3]float64 {
	return [3]float64{1, -real(r1 + r2), real(r1 * r2)}
}

// Mul returns the product of two real polynomials (linear convolution of
// their coefficient slices). Either order convention works as long as both
// inputs use the same one.
func Mul(p, q []float64) []float64 {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}

	out := make([]float64, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			out[i+j] += a * b
		}
	}

	return out
}

// MaxAbs returns the largest magnitude among roots, 0 for none.
func MaxAbs(roots []complex128) float64 {
	m := 0.0
	for _, r := range roots {
		m = math.Max(m, cmplx.Abs(r))
	}

	return m
}
