package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-rfi/dsp/core"
	"github.com/cwbudde/algo-rfi/dsp/filter/design"
	"github.com/cwbudde/algo-rfi/dsp/filter/zerophase"
	"github.com/cwbudde/algo-rfi/dsp/window"
	"github.com/cwbudde/algo-rfi/internal/testutil"
)

func defaultBlocker(t *testing.T) *blocker {
	t.Helper()

	b, err := newBlocker(core.DefaultProcessorConfig(),
		design.BandSpec{Low: 20, High: 50}, design.BandSpec{Low: 100, High: 120}, design.DefaultOrder)
	if err != nil {
		t.Fatal(err)
	}

	return b
}

func TestBlockerRemovesInterference(t *testing.T) {
	for _, sections := range []bool{false, true} {
		b := defaultBlocker(t)
		b.sections = sections

		x := testutil.Add(
			testutil.DeterministicSine(35, 1000, 1, 1000),
			testutil.DeterministicSine(110, 1000, 0.5, 1000),
		)

		y, err := b.Filter(x)
		if err != nil {
			t.Fatal(err)
		}

		r, err := b.report(x, y, 0, window.TypeHann)
		if err != nil {
			t.Fatal(err)
		}

		sig, rfi := r.tones[0], r.tones[1]
		if sig.freqHz != 35 || rfi.freqHz != 110 {
			t.Fatalf("tone frequencies %v, %v", sig.freqHz, rfi.freqHz)
		}

		if math.Abs(sig.before-1) > 1e-9 || math.Abs(rfi.before-0.5) > 1e-9 {
			t.Fatalf("input tones %v, %v", sig.before, rfi.before)
		}

		if db := core.AttenuationDB(sig.before, sig.after); math.Abs(db) > 0.01 {
			t.Errorf("sos=%v: signal attenuated by %.4f dB", sections, db)
		}

		if db := core.AttenuationDB(rfi.before, rfi.after); db < 30 {
			t.Errorf("sos=%v: interference attenuated by only %.2f dB", sections, db)
		}

		if math.Abs(r.peakAfter[0]-35) > 1 {
			t.Errorf("sos=%v: dominant peak after filtering at %v Hz", sections, r.peakAfter[0])
		}
	}
}

func TestNewBlockerErrors(t *testing.T) {
	cfg := core.DefaultProcessorConfig()
	ok := design.BandSpec{Low: 20, High: 50}

	if _, err := newBlocker(cfg, ok, design.BandSpec{Low: 100, High: 600}, 4); !errors.Is(err, design.ErrInvalidBand) {
		t.Fatalf("err = %v, want ErrInvalidBand", err)
	}

	for _, order := range []int{0, design.MaxOrder + 1} {
		if _, err := newBlocker(cfg, ok, ok, order); !errors.Is(err, design.ErrInvalidOrder) {
			t.Fatalf("order %d: err = %v, want ErrInvalidOrder", order, err)
		}
	}
}

func TestNewBlockerIgnoresSignalBand(t *testing.T) {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(60))

	b, err := newBlocker(cfg, design.BandSpec{Low: 20, High: 50}, design.BandSpec{Low: 10, High: 12}, 2)
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.Add(
		testutil.DeterministicSine(5, 60, 1, 600),
		testutil.DeterministicSine(11, 60, 0.5, 600),
	)

	y, err := b.Filter(x)
	if err != nil {
		t.Fatal(err)
	}

	r, err := b.report(x, y, 0, window.TypeHann)
	if err != nil {
		t.Fatal(err)
	}

	if len(r.tones) != 1 || r.tones[0].label != "interference" {
		t.Fatalf("tones = %+v, want only the interference row", r.tones)
	}
}

func TestRunFallsBackToSections(t *testing.T) {
	tests := [][]string{
		{"-order", "10"},
		{"-stop-low", "5", "-stop-high", "10", "-order", "5"},
	}

	for _, args := range tests {
		var out, errOut bytes.Buffer

		if err := run(args, &out, &errOut); err != nil {
			t.Fatalf("%v: %v", args, err)
		}

		if !strings.Contains(errOut.String(), "second-order sections") {
			t.Errorf("%v: no fallback note on stderr: %q", args, errOut.String())
		}

		if !strings.Contains(out.String(), "interference") {
			t.Errorf("%v: report missing:\n%s", args, out.String())
		}
	}

	var out bytes.Buffer
	if err := run([]string{"-coeffs", "-order", "10"}, &out, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	var got tfJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}

	if len(got.Sections) != 10 || got.B != nil || got.A != nil {
		t.Fatalf("got %d sections, b = %v, a = %v", len(got.Sections), got.B, got.A)
	}
}

func TestRunDefaultOrderKeepsTransferFunction(t *testing.T) {
	var errOut bytes.Buffer

	if err := run(nil, &bytes.Buffer{}, &errOut); err != nil {
		t.Fatal(err)
	}

	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
}

func TestRunReport(t *testing.T) {
	var out, errOut bytes.Buffer

	if err := run(nil, &out, &errOut); err != nil {
		t.Fatalf("run: %v (stderr %q)", err, errOut.String())
	}

	text := out.String()
	for _, want := range []string{"1000 samples at 1000 Hz", "signal", "interference", "35.00", "110.00", "before", "after"} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}

func TestRunCoefficients(t *testing.T) {
	var out bytes.Buffer

	if err := run([]string{"-coeffs"}, &out, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	var got tfJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}

	if len(got.B) != 9 || len(got.A) != 9 || got.A[0] != 1 || got.Order != 4 || got.SampleRate != 1000 {
		t.Fatalf("unexpected coefficients: %+v", got)
	}

	if math.Abs(got.B[0]-0.84847529552) > 1e-7 {
		t.Fatalf("b[0] = %v", got.B[0])
	}

	out.Reset()

	if err := run([]string{"-coeffs", "-sos", "-order", "10"}, &out, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	got = tfJSON{}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatal(err)
	}

	if len(got.Sections) != 10 || got.B != nil {
		t.Fatalf("got %d sections, b = %v", len(got.Sections), got.B)
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")

	x := testutil.Add(
		testutil.DeterministicSine(35, 1000, 1, 500),
		testutil.DeterministicSine(110, 1000, 0.5, 500),
	)

	if err := writeSamplesFile(in, x); err != nil {
		t.Fatal(err)
	}

	if err := run([]string{"-in", in, "-out", out, "-sos"}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	y, err := readSamplesFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if len(y) != len(x) {
		t.Fatalf("len(y) = %d, want %d", len(y), len(x))
	}

	if amp, _ := testutil.FitTone(y, 110, 1000, 100, 300); amp > 2e-3 {
		t.Fatalf("110 Hz residual %v", amp)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.txt")

	if err := os.WriteFile(short, []byte("1\n2\n3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "order", args: []string{"-order", "0"}, want: design.ErrInvalidOrder},
		{name: "band", args: []string{"-stop-high", "600"}, want: design.ErrInvalidBand},
		{name: "short input", args: []string{"-in", short}, want: zerophase.ErrInsufficientData},
		{name: "missing file", args: []string{"-in", filepath.Join(dir, "nope.txt")}, want: os.ErrNotExist},
		{name: "window", args: []string{"-window", "kaiser"}},
		{name: "extra args", args: []string{"foo"}},
		{name: "bad flag", args: []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}

			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadWriteSamples(t *testing.T) {
	x, err := readSamples(strings.NewReader("# header\n1.5\n\n  -2e-3 \n0\n"))
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, x, []float64{1.5, -2e-3, 0}, 0)

	if _, err := readSamples(strings.NewReader("1\nabc\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want line 2 parse error", err)
	}

	want := testutil.DeterministicNoise(2, 1, 50)

	var buf bytes.Buffer
	if err := writeSamples(&buf, want); err != nil {
		t.Fatal(err)
	}

	got, err := readSamples(&buf)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 0)
}

func TestWriteSamplesFileLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out")

	// Renaming a file over a non-empty directory fails.
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(target, "keep"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if err := writeSamplesFile(target, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 || entries[0].Name() != "out" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}

		t.Fatalf("directory holds %v, want only out", names)
	}
}

func TestWriteSamplesFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	for _, want := range [][]float64{{1, 2, 3}, {4}} {
		if err := writeSamplesFile(path, want); err != nil {
			t.Fatal(err)
		}

		got, err := readSamplesFile(path)
		if err != nil {
			t.Fatal(err)
		}

		testutil.RequireSliceNearlyEqual(t, got, want, 0)
	}
}
