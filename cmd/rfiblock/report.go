package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-rfi/dsp/core"
	"github.com/cwbudde/algo-rfi/dsp/spectrum"
	"github.com/cwbudde/algo-rfi/dsp/window"
)

type toneRow struct {
	label         string
	freqHz        float64
	before, after float64
}

type report struct {
	samples    int
	sampleRate float64
	tones      []toneRow
	peakBefore [2]float64 // Hz, amplitude
	peakAfter  [2]float64
}

func (b *blocker) report(x, y []float64, fftSize int, win window.Type) (report, error) {
	r := report{samples: len(x), sampleRate: b.sampleRate}

	type target struct {
		label string
		freq  float64
	}

	// A signal band outside the captured range has no row.
	var targets []target
	if b.signal.Validate(b.sampleRate) == nil {
		targets = append(targets, target{"signal", b.signal.Mean()})
	}

	targets = append(targets, target{"interference", b.interference.Mean()})

	for _, tone := range targets {
		before, err := spectrum.ToneAmplitude(x, tone.freq, b.sampleRate)
		if err != nil {
			return report{}, err
		}

		after, err := spectrum.ToneAmplitude(y, tone.freq, b.sampleRate)
		if err != nil {
			return report{}, err
		}

		r.tones = append(r.tones, toneRow{label: tone.label, freqHz: tone.freq, before: before, after: after})
	}

	nyquist := b.sampleRate / 2

	for i, data := range [][]float64{x, y} {
		s, err := spectrum.Analyze(data, b.sampleRate, spectrum.WithFFTSize(fftSize), spectrum.WithWindow(win))
		if err != nil {
			return report{}, err
		}

		f, a, _ := s.Peak(0, nyquist)
		if i == 0 {
			r.peakBefore = [2]float64{f, a}
		} else {
			r.peakAfter = [2]float64{f, a}
		}
	}

	return r, nil
}

func (r report) write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d samples at %g Hz\n\n", r.samples, r.sampleRate); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Tone\tFreq [Hz]\tBefore\tAfter\tAttenuation [dB]\n")
	fmt.Fprintf(tw, "----\t---------\t------\t-----\t----------------\n")

	for _, t := range r.tones {
		fmt.Fprintf(tw, "%s\t%.2f\t%.6f\t%.6f\t%.2f\n",
			t.label, t.freqHz, t.before, t.after, core.AttenuationDB(t.before, t.after))
	}

	fmt.Fprintf(tw, "\nPeak\tFreq [Hz]\tAmplitude\t\t\n")
	fmt.Fprintf(tw, "----\t---------\t---------\t\t\n")
	fmt.Fprintf(tw, "before\t%.2f\t%.6f\t\t\n", r.peakBefore[0], r.peakBefore[1])
	fmt.Fprintf(tw, "after\t%.2f\t%.6f\t\t\n", r.peakAfter[0], r.peakAfter[1])

	return tw.Flush()
}
