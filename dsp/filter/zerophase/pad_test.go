package zerophase

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-rfi/internal/testutil"
)

func TestExtend(t *testing.T) {
	x := []float64{1, 2, 4, 7, 11}

	tests := []struct {
		padType PadType
		want    []float64
	}{
		{PadOdd, []float64{-2, 0, 1, 2, 4, 7, 11, 15, 18}},
		{PadEven, []float64{4, 2, 1, 2, 4, 7, 11, 7, 4}},
		{PadConstant, []float64{1, 1, 1, 2, 4, 7, 11, 11, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.padType.String(), func(t *testing.T) {
			got := extend(x, tt.padType, 2)
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 0)
		})
	}

	if got := extend(x, PadOdd, 0); len(got) != len(x) {
		t.Fatalf("zero padding changed length to %d", len(got))
	}
}

func TestCheckLength(t *testing.T) {
	if err := checkLength(28, 27); err != nil {
		t.Fatalf("28 samples with pad 27: %v", err)
	}

	for _, n := range []int{0, 1, 27} {
		if err := checkLength(n, 27); !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("%d samples: err = %v", n, err)
		}
	}
}

func TestReverseAndTrim(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5}
	reverse(buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{5, 4, 3, 2, 1}, 0)

	out := trim(buf, 1)
	testutil.RequireSliceNearlyEqual(t, out, []float64{4, 3, 2}, 0)

	out[0] = 99
	if buf[1] == 99 {
		t.Fatal("trim aliases its input")
	}
}

func TestOptions(t *testing.T) {
	cfg := applyOptions(nil)
	if cfg.padType != PadOdd || cfg.resolvePadLen(9) != 27 {
		t.Fatalf("defaults: %+v", cfg)
	}

	cfg = applyOptions([]Option{WithPadLen(5), WithPadLen(-3), nil})
	if cfg.resolvePadLen(9) != 5 {
		t.Fatalf("WithPadLen: %d", cfg.resolvePadLen(9))
	}

	cfg = applyOptions([]Option{WithPadType(PadNone), WithPadLen(5)})
	if cfg.resolvePadLen(9) != 0 {
		t.Fatalf("PadNone pad length = %d", cfg.resolvePadLen(9))
	}

	cfg = applyOptions([]Option{WithPadType(PadType(42))})
	if cfg.padType != PadOdd {
		t.Fatalf("unknown pad type accepted: %v", cfg.padType)
	}

	if got := PadType(42).String(); got != "PadType(42)" {
		t.Fatalf("String() = %q", got)
	}
}
