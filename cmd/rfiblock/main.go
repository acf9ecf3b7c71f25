// Command rfiblock removes narrowband interference from a sampled signal
// with a zero-phase Butterworth bandstop filter and reports how much of
// the interference it removed.
//
// Usage:
//
//	rfiblock [flags]
//
// Without -in it synthesises a test signal: a unit sine at the centre of
// the signal band plus a half-amplitude sine at the centre of the
// interference band.
//
// Examples:
//
//	rfiblock
//	rfiblock -stop-low 45 -stop-high 55 -order 6
//	rfiblock -in capture.txt -rate 8000 -out clean.txt
//	rfiblock -coeffs
//	rfiblock -coeffs -sos -order 10
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-rfi/dsp/core"
	"github.com/cwbudde/algo-rfi/dsp/filter/design"
	"github.com/cwbudde/algo-rfi/dsp/signal"
	"github.com/cwbudde/algo-rfi/dsp/window"
)

type options struct {
	rate         float64
	signal       design.BandSpec
	interference design.BandSpec
	order        int
	duration     float64
	sections     bool
	in, out      string
	coeffs       bool
	fftSize      int
	window       string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("rfiblock", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&o.rate, "rate", core.DefaultSampleRate, "sample rate in Hz")
	fs.Float64Var(&o.signal.Low, "signal-low", 20, "lower edge of the signal band in Hz")
	fs.Float64Var(&o.signal.High, "signal-high", 50, "upper edge of the signal band in Hz")
	fs.Float64Var(&o.interference.Low, "stop-low", 100, "lower edge of the interference band in Hz")
	fs.Float64Var(&o.interference.High, "stop-high", 120, "upper edge of the interference band in Hz")
	fs.IntVar(&o.order, "order", design.DefaultOrder, "Butterworth prototype order")
	fs.Float64Var(&o.duration, "duration", 1, "length of the synthesised test signal in seconds")
	fs.BoolVar(&o.sections, "sos", false, "filter with cascaded second-order sections (chosen automatically when the single transfer function is unstable)")
	fs.StringVar(&o.in, "in", "", "read samples from this file (one per line) instead of synthesising")
	fs.StringVar(&o.out, "out", "", "write filtered samples to this file")
	fs.BoolVar(&o.coeffs, "coeffs", false, "print the filter coefficients as JSON and exit")
	fs.IntVar(&o.fftSize, "fft", 0, "FFT size for the peak report (0 = next power of two)")
	fs.StringVar(&o.window, "window", "hann", "analysis window for the peak report")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rfiblock [flags]\n\n")
		fmt.Fprintf(stderr, "Removes an interference band with a zero-phase Butterworth bandstop filter.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  rfiblock\n")
		fmt.Fprintf(stderr, "  rfiblock -in capture.txt -rate 8000 -out clean.txt\n")
		fmt.Fprintf(stderr, "  rfiblock -coeffs -sos -order 10\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	b, err := newBlocker(core.ApplyProcessorOptions(core.WithSampleRate(o.rate)), o.signal, o.interference, o.order)
	if err != nil {
		return err
	}

	b.sections = o.sections

	if err := b.preferSections(stderr); err != nil {
		return err
	}

	if o.coeffs {
		return b.writeCoefficients(stdout)
	}

	win, err := window.ParseType(o.window)
	if err != nil {
		return err
	}

	x, err := loadInput(o, b)
	if err != nil {
		return err
	}

	y, err := b.Filter(x)
	if err != nil {
		return err
	}

	if o.out != "" {
		if err := writeSamplesFile(o.out, y); err != nil {
			return err
		}
	}

	r, err := b.report(x, y, o.fftSize, win)
	if err != nil {
		return err
	}

	return r.write(stdout)
}

func loadInput(o options, b *blocker) ([]float64, error) {
	if o.in != "" {
		return readSamplesFile(o.in)
	}

	g := signal.NewGenerator(core.WithSampleRate(b.sampleRate))

	_, x, err := g.TestSignal(b.signal, b.interference, o.duration)

	return x, err
}
