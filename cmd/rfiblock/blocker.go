package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-rfi/dsp/core"
	"github.com/cwbudde/algo-rfi/dsp/filter/biquad"
	"github.com/cwbudde/algo-rfi/dsp/filter/design"
	"github.com/cwbudde/algo-rfi/dsp/filter/zerophase"
)

// blocker holds the bands of one interference-removal job. It designs the
// filter on every call; nothing is cached between calls.
type blocker struct {
	sampleRate   float64
	signal       design.BandSpec
	interference design.BandSpec
	order        int
	sections     bool
}

// newBlocker checks the interference band and order by designing the
// filter once. The signal band is only used to label the report and is
// not checked here.
func newBlocker(cfg core.ProcessorConfig, sig, interference design.BandSpec, order int) (*blocker, error) {
	if _, err := design.BandstopZPK(cfg.SampleRate, interference, order); err != nil {
		return nil, fmt.Errorf("interference filter: %w", err)
	}

	return &blocker{
		sampleRate:   cfg.SampleRate,
		signal:       sig,
		interference: interference,
		order:        order,
	}, nil
}

// preferSections switches to the section form when the expanded transfer
// function of the requested order is unstable, and says so on w.
func (b *blocker) preferSections(w io.Writer) error {
	if b.sections {
		return nil
	}

	_, err := design.Bandstop(b.sampleRate, b.interference, b.order)
	if errors.Is(err, design.ErrUnstableFilter) {
		b.sections = true
		_, err = fmt.Fprintf(w, "note: order %d is unstable as a single transfer function; using second-order sections\n", b.order)
	}

	return err
}

// Filter designs the bandstop filter for the interference band and
// applies it forward and backward.
func (b *blocker) Filter(x []float64) ([]float64, error) {
	if b.sections {
		sos, err := design.BandstopSections(b.sampleRate, b.interference, b.order)
		if err != nil {
			return nil, err
		}

		return zerophase.ApplySections(sos, x)
	}

	tf, err := design.Bandstop(b.sampleRate, b.interference, b.order)
	if err != nil {
		return nil, err
	}

	return zerophase.Apply(tf, x)
}

type tfJSON struct {
	SampleRate float64   `json:"sample_rate"`
	Low        float64   `json:"stop_low"`
	High       float64   `json:"stop_high"`
	Order      int       `json:"order"`
	B          []float64 `json:"b,omitempty"`
	A          []float64 `json:"a,omitempty"`
	Sections   []sosJSON `json:"sections,omitempty"`
}

type sosJSON struct {
	B0 float64 `json:"b0"`
	B1 float64 `json:"b1"`
	B2 float64 `json:"b2"`
	A1 float64 `json:"a1"`
	A2 float64 `json:"a2"`
}

func (b *blocker) writeCoefficients(w io.Writer) error {
	out := tfJSON{
		SampleRate: b.sampleRate,
		Low:        b.interference.Low,
		High:       b.interference.High,
		Order:      b.order,
	}

	if b.sections {
		sos, err := design.BandstopSections(b.sampleRate, b.interference, b.order)
		if err != nil {
			return err
		}

		out.Sections = toSOSJSON(sos)
	} else {
		tf, err := design.Bandstop(b.sampleRate, b.interference, b.order)
		if err != nil {
			return err
		}

		out.B, out.A = tf.B, tf.A
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func toSOSJSON(sos []biquad.Coefficients) []sosJSON {
	out := make([]sosJSON, len(sos))
	for i, s := range sos {
		out[i] = sosJSON{B0: s.B0, B1: s.B1, B2: s.B2, A1: s.A1, A2: s.A2}
	}

	return out
}
