package design

import (
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-rfi/dsp/filter/biquad"
	"github.com/cwbudde/algo-rfi/dsp/filter/iir"
	"github.com/cwbudde/algo-rfi/internal/polyroot"
)

// RootPair holds two roots whose sum and product are real: a complex
// conjugate pair, or two real roots. Every pair expands into one real
// quadratic factor.
type RootPair [2]complex128

// Quadratic returns the factor (1 - r1 z^-1)(1 - r2 z^-1) as taps
// [1, -(r1+r2), r1*r2].
func (p RootPair) Quadratic() [3]float64 {
	return polyroot.Quadratic(p[0], p[1])
}

// MaxAbs returns the larger root magnitude.
func (p RootPair) MaxAbs() float64 {
	return max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// at returns (x - r1)(x - r2) for real x, which is itself real.
func (p RootPair) at(x float64) float64 {
	return x*x - x*real(p[0]+p[1]) + real(p[0]*p[1])
}

func (p RootPair) mapRoots(f func(complex128) complex128) RootPair {
	return RootPair{f(p[0]), f(p[1])}
}

// ZPK is a zero/pole/gain description in the z-plane:
//
//	H(z) = Gain * prod (1 - z_i z^-1) / prod (1 - p_i z^-1)
type ZPK struct {
	Zeros      []RootPair
	Poles      []RootPair
	Gain       float64
	SampleRate float64
}

// Order returns the number of poles.
func (z ZPK) Order() int { return 2 * len(z.Poles) }

// Stable reports whether every pole is strictly inside the unit circle.
func (z ZPK) Stable() bool {
	for _, p := range z.Poles {
		if !(p.MaxAbs() < 1) {
			return false
		}
	}

	return true
}

// PoleList returns the poles as a flat slice.
func (z ZPK) PoleList() []complex128 { return flatten(z.Poles) }

// ZeroList returns the zeros as a flat slice.
func (z ZPK) ZeroList() []complex128 { return flatten(z.Zeros) }

// TransferFunction expands the pairs into numerator and denominator
// polynomials. A[0] is 1 and the gain is folded into B. The expansion is
// not checked: at high orders the rounded denominator can be unstable even
// when every pair in z is inside the unit circle.
func (z ZPK) TransferFunction() iir.TransferFunction {
	b := []float64{z.Gain}
	for _, p := range z.Zeros {
		q := p.Quadratic()
		b = polyroot.Mul(b, q[:])
	}

	a := []float64{1}
	for _, p := range z.Poles {
		q := p.Quadratic()
		a = polyroot.Mul(a, q[:])
	}

	for len(b) < len(a) {
		b = append(b, 0)
	}

	return iir.TransferFunction{B: b, A: a}
}

// Sections returns the cascade form: one biquad per pole pair, ordered by
// pole radius so the most resonant section runs last. Zero pairs are
// assigned in order and the gain is folded into the first section.
func (z ZPK) Sections() []biquad.Coefficients {
	poles := append([]RootPair(nil), z.Poles...)
	sort.SliceStable(poles, func(i, j int) bool {
		return poles[i].MaxAbs() < poles[j].MaxAbs()
	})

	n := max(len(poles), len(z.Zeros))
	if n == 0 {
		return []biquad.Coefficients{{B0: z.Gain}}
	}

	sections := make([]biquad.Coefficients, n)
	for i := range sections {
		num := [3]float64{1, 0, 0}
		if i < len(z.Zeros) {
			num = z.Zeros[i].Quadratic()
		}

		den := [3]float64{1, 0, 0}
		if i < len(poles) {
			den = poles[i].Quadratic()
		}

		g := 1.0
		if i == 0 {
			g = z.Gain
		}

		sections[i] = biquad.Coefficients{
			B0: g * num[0], B1: g * num[1], B2: g * num[2],
			A1: den[1], A2: den[2],
		}
	}

	return sections
}

func flatten(pairs []RootPair) []complex128 {
	out := make([]complex128, 0, 2*len(pairs))
	for _, p := range pairs {
		out = append(out, p[0], p[1])
	}

	return out
}
