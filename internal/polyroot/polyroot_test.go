package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
	"testing"
)

func TestDurandKernerQuadratic(t *testing.T) {
	// z^2 - 3z + 2 = (z-1)(z-2)
	roots, err := DurandKerner([]complex128{1, -3, 2})
	if err != nil {
		t.Fatal(err)
	}

	r := []float64{real(roots[0]), real(roots[1])}
	sort.Float64s(r)

	if math.Abs(r[0]-1) > 1e-10 || math.Abs(r[1]-2) > 1e-10 {
		t.Fatalf("roots = %v, want {1, 2}", r)
	}
}

func TestDurandKernerConjugateRoots(t *testing.T) {
	// z^4 + 1: roots on the unit circle at odd multiples of pi/4.
	coeff := []complex128{1, 0, 0, 0, 1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		if math.Abs(cmplx.Abs(r)-1) > 1e-10 {
			t.Errorf("root %d: |%v| != 1", i, r)
		}

		if v := PolyEval(coeff, r); cmplx.Abs(v) > 1e-9 {
			t.Errorf("root %d: p(%v) = %v", i, r, v)
		}
	}
}

func TestDurandKernerDegenerate(t *testing.T) {
	for _, coeff := range [][]complex128{nil, {1}, {0, 1, 2}} {
		if _, err := DurandKerner(coeff); !errors.Is(err, ErrDegeneratePolynomial) {
			t.Fatalf("DurandKerner(%v) err = %v, want ErrDegeneratePolynomial", coeff, err)
		}
	}
}

func TestRootsFilterDenominator(t *testing.T) {
	// (1 - 0.5 z^-1)(1 - 0.8 z^-1) = 1 - 1.3 z^-1 + 0.4 z^-2
	roots, err := Roots([]float64{1, -1.3, 0.4})
	if err != nil {
		t.Fatal(err)
	}

	r := []float64{real(roots[0]), real(roots[1])}
	sort.Float64s(r)

	if math.Abs(r[0]-0.5) > 1e-10 || math.Abs(r[1]-0.8) > 1e-10 {
		t.Fatalf("roots = %v, want {0.5, 0.8}", r)
	}

	if m := MaxAbs(roots); math.Abs(m-0.8) > 1e-10 {
		t.Fatalf("MaxAbs = %v, want 0.8", m)
	}
}

func TestRootsSkipsLeadingZerosAndConstants(t *testing.T) {
	roots, err := Roots([]float64{0, 0, 2, -4})
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 1 || cmplx.Abs(roots[0]-2) > 1e-12 {
		t.Fatalf("roots = %v, want [2]", roots)
	}

	roots, err = Roots([]float64{3})
	if err != nil || len(roots) != 0 {
		t.Fatalf("constant: roots=%v err=%v", roots, err)
	}

	if _, err := Roots([]float64{0, 0}); !errors.Is(err, ErrDegeneratePolynomial) {
		t.Fatalf("zero polynomial err = %v", err)
	}
}

func TestQuadraticAndMul(t *testing.T) {
	p := complex(0.6, 0.3)
	q := Quadratic(p, cmplx.Conj(p))

	want := [3]float64{1, -1.2, 0.45}
	for i := range q {
		if math.Abs(q[i]-want[i]) > 1e-15 {
			t.Fatalf("Quadratic = %v, want %v", q, want)
		}
	}

	got := Mul([]float64{1, -0.5}, []float64{1, -0.8})
	exp := []float64{1, -1.3, 0.4}
	for i := range exp {
		if math.Abs(got[i]-exp[i]) > 1e-15 {
			t.Fatalf("Mul = %v, want %v", got, exp)
		}
	}

	if Mul(nil, exp) != nil {
		t.Fatal("Mul with empty input should return nil")
	}
}
