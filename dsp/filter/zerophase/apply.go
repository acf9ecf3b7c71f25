package zerophase

import (
	"errors"

	"github.com/cwbudde/algo-rfi/dsp/filter/iir"
)

var (
	// ErrInsufficientData is returned when the input is too short for the
	// requested edge extension.
	ErrInsufficientData = errors.New("zerophase: insufficient data")
	// ErrUnstableFilter is returned for filters with a pole on or outside
	// the unit circle. It is the same value as iir.ErrUnstableFilter.
	ErrUnstableFilter = iir.ErrUnstableFilter
)

// Apply filters x forward and backward with tf and returns a new slice of
// the same length.
//
// The denominator is checked for stability before any recursion runs. By
// default the input is extended by 3*max(len(tf.A), len(tf.B)) samples of
// odd reflection at each end, so it must hold at least one more sample
// than that; see MinLength.
func Apply(tf iir.TransferFunction, x []float64, opts ...Option) ([]float64, error) {
	if err := tf.CheckStable(); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	padLen := cfg.resolvePadLen(tf.Len())

	if err := checkLength(len(x), padLen); err != nil {
		return nil, err
	}

	norm := tf.Normalize()

	// A stable filter never yields a singular system; zero state is the
	// fallback all the same.
	zi, err := norm.SteadyState()
	if err != nil {
		zi = make([]float64, norm.Order())
	}

	f, err := iir.NewFilter(norm)
	if err != nil {
		return nil, err
	}

	ext := extend(x, cfg.padType, padLen)

	f.SetScaledState(zi, ext[0])
	f.ProcessBlock(ext)

	reverse(ext)

	f.SetScaledState(zi, ext[0])
	f.ProcessBlock(ext)

	reverse(ext)

	return trim(ext, padLen), nil
}

// MinLength returns the shortest input Apply accepts for tf with opts.
func MinLength(tf iir.TransferFunction, opts ...Option) int {
	return applyOptions(opts).resolvePadLen(tf.Len()) + 1
}
