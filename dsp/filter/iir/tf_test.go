package iir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-rfi/internal/polyroot"
	"github.com/cwbudde/algo-rfi/internal/testutil"
)

func TestNormalize(t *testing.T) {
	tf := TransferFunction{B: []float64{2, 4, 6}, A: []float64{2, 1}}
	n := tf.Normalize()

	testutil.RequireSliceNearlyEqual(t, n.B, []float64{1, 2, 3}, 0)
	testutil.RequireSliceNearlyEqual(t, n.A, []float64{1, 0.5, 0}, 0)

	if tf.A[0] != 2 {
		t.Fatal("Normalize modified its receiver")
	}

	if n.Order() != 2 {
		t.Fatalf("Order() = %d, want 2", n.Order())
	}
}

func TestClone(t *testing.T) {
	tf := fourthOrder()
	c := tf.Clone()
	c.B[0] = 99

	if tf.B[0] == 99 {
		t.Fatal("Clone shares storage")
	}
}

func TestIsStableAgreesWithRoots(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
	}{
		{"first order inside", []float64{1, -0.9}},
		{"first order outside", []float64{1, -1.1}},
		{"resonant pair", []float64{1, -1.8, 0.97}},
		{"pair outside", []float64{1, -1.8, 1.03}},
		{"fourth order", []float64{1, -1.2, 0.9, -0.35, 0.06}},
		{"mixed radii", polyroot.Mul([]float64{1, -1.9, 0.99}, []float64{1, 0.5, 1.21})},
		{"scaled", []float64{2, -1.8, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tf := TransferFunction{B: []float64{1}, A: tt.a}

			poles, err := tf.Poles()
			if err != nil {
				t.Fatal(err)
			}

			want := polyroot.MaxAbs(poles) < 1
			if got := tf.IsStable(); got != want {
				t.Fatalf("IsStable() = %v, max |pole| = %v", got, polyroot.MaxAbs(poles))
			}
		})
	}
}

func TestIsStableRejectsInvalid(t *testing.T) {
	if (TransferFunction{B: []float64{1}, A: []float64{0, 1}}).IsStable() {
		t.Fatal("a[0] == 0 reported stable")
	}
}

func TestResponse(t *testing.T) {
	// Two-tap average: H = (1 + z^-1)/2, |H(f)| = |cos(pi f / fs)|.
	tf := TransferFunction{B: []float64{0.5, 0.5}, A: []float64{1}}

	for _, f := range []float64{0, 100, 250, 400} {
		want := math.Abs(math.Cos(math.Pi * f / 1000))
		if got := cmplx.Abs(tf.Response(f, 1000)); math.Abs(got-want) > 1e-12 {
			t.Fatalf("|H(%v)| = %v, want %v", f, got, want)
		}

		if f > 0 {
			wantPhase := -math.Pi * f / 1000
			if got := tf.Phase(f, 1000); math.Abs(got-wantPhase) > 1e-12 {
				t.Fatalf("phase(%v) = %v, want %v", f, got, wantPhase)
			}
		}
	}

	if db := tf.MagnitudeDB(0, 1000); math.Abs(db) > 1e-12 {
		t.Fatalf("DC magnitude = %v dB, want 0", db)
	}

	if g := tf.DCGain(); g != 1 {
		t.Fatalf("DCGain = %v, want 1", g)
	}
}

func TestZeros(t *testing.T) {
	tf := TransferFunction{B: []float64{1, 0, 1}, A: []float64{1}}

	zeros, err := tf.Zeros()
	if err != nil {
		t.Fatal(err)
	}

	for _, z := range zeros {
		if math.Abs(cmplx.Abs(z)-1) > 1e-10 || math.Abs(real(z)) > 1e-10 {
			t.Fatalf("zero %v, want ±j", z)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := fourthOrder().Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	if err := (TransferFunction{A: []float64{1}}).Validate(); !errors.Is(err, ErrInvalidCoefficients) {
		t.Fatalf("empty B err = %v", err)
	}
}

func TestCheckStable(t *testing.T) {
	if err := fourthOrder().CheckStable(); err != nil {
		t.Fatalf("CheckStable() = %v, want nil", err)
	}

	unstable := TransferFunction{B: []float64{1}, A: []float64{1, -2.5, 1}}
	if err := unstable.CheckStable(); !errors.Is(err, ErrUnstableFilter) {
		t.Fatalf("err = %v, want ErrUnstableFilter", err)
	}

	if err := (TransferFunction{B: []float64{1}}).CheckStable(); !errors.Is(err, ErrInvalidCoefficients) {
		t.Fatalf("err = %v, want ErrInvalidCoefficients", err)
	}
}

func TestLen(t *testing.T) {
	tf := TransferFunction{B: []float64{1}, A: []float64{1, 0.5, 0.25}}
	if tf.Len() != 3 || tf.Order() != 2 {
		t.Fatalf("Len() = %d, Order() = %d", tf.Len(), tf.Order())
	}
}
