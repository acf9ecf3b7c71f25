package zerophase

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rfi/dsp/filter/biquad"
	"github.com/cwbudde/algo-rfi/dsp/filter/iir"
)

// ApplySections is Apply for a cascade of second-order sections. The
// default extension is 3*(2*len(sections)+1) samples, which equals the
// transfer-function default for the same filter.
//
// Each section starts a pass in its own steady state, scaled by the DC
// gain of the sections in front of it.
func ApplySections(sections []biquad.Coefficients, x []float64, opts ...Option) ([]float64, error) {
	if err := checkSections(sections); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	padLen := cfg.resolvePadLen(sectionTaps(sections))

	if err := checkLength(len(x), padLen); err != nil {
		return nil, err
	}

	zi := biquad.SteadyState(sections)
	chain := biquad.NewChain(sections)
	ext := extend(x, cfg.padType, padLen)

	chain.SetState(scaleStates(zi, ext[0]))
	chain.ProcessBlock(ext)

	reverse(ext)

	chain.SetState(scaleStates(zi, ext[0]))
	chain.ProcessBlock(ext)

	reverse(ext)

	return trim(ext, padLen), nil
}

// MinLengthSections returns the shortest input ApplySections accepts.
func MinLengthSections(sections []biquad.Coefficients, opts ...Option) int {
	return applyOptions(opts).resolvePadLen(sectionTaps(sections)) + 1
}

func sectionTaps(sections []biquad.Coefficients) int {
	return 2*len(sections) + 1
}

func checkSections(sections []biquad.Coefficients) error {
	if len(sections) == 0 {
		return fmt.Errorf("%w: no sections", iir.ErrInvalidCoefficients)
	}

	for i, s := range sections {
		for _, v := range [...]float64{s.B0, s.B1, s.B2, s.A1, s.A2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: section %d has non-finite coefficient %v", iir.ErrInvalidCoefficients, i, v)
			}
		}

		if !s.Stable() {
			return fmt.Errorf("%w: section %d (a1=%g, a2=%g)", ErrUnstableFilter, i, s.A1, s.A2)
		}
	}

	return nil
}

func scaleStates(states [][2]float64, level float64) [][2]float64 {
	out := make([][2]float64, len(states))
	for i, s := range states {
		out[i] = [2]float64{s[0] * level, s[1] * level}
	}

	return out
}
