package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-rfi/dsp/filter/iir"
)

const (
	// DefaultOrder is the prototype order used when callers have no reason
	// to choose another.
	DefaultOrder = 4
	// MaxOrder bounds the prototype order. The section form is stable up
	// to it for every valid band; the expanded transfer function may fail
	// well below it, see Bandstop.
	MaxOrder = 24
)

var (
	// ErrInvalidBand is returned for malformed or out-of-range band edges,
	// including a sample rate that leaves no room for them.
	ErrInvalidBand = errors.New("design: invalid band")
	// ErrInvalidOrder is returned for orders outside [1, MaxOrder].
	ErrInvalidOrder = errors.New("design: invalid order")
	// ErrUnstableFilter is returned by Bandstop when the expanded
	// denominator has a root on or outside the unit circle. It is the same
	// value as iir.ErrUnstableFilter.
	ErrUnstableFilter = iir.ErrUnstableFilter
)

// BandSpec is a frequency band in Hz. For a bandstop design it is the
// rejection band.
type BandSpec struct {
	Low, High float64
}

// NewBandSpec returns a band whose edges satisfy 0 < low < high < fs/2.
func NewBandSpec(sampleRate, low, high float64) (BandSpec, error) {
	b := BandSpec{Low: low, High: high}
	if err := b.Validate(sampleRate); err != nil {
		return BandSpec{}, err
	}

	return b, nil
}

func (b BandSpec) check() error {
	if !finite(b.Low) || !finite(b.High) {
		return fmt.Errorf("%w: edges must be finite: [%v, %v]", ErrInvalidBand, b.Low, b.High)
	}

	if b.Low <= 0 {
		return fmt.Errorf("%w: low edge must be > 0: %v", ErrInvalidBand, b.Low)
	}

	if b.Low >= b.High {
		return fmt.Errorf("%w: low edge %v must be below high edge %v", ErrInvalidBand, b.Low, b.High)
	}

	return nil
}

// Validate checks the band against the Nyquist frequency of sampleRate.
func (b BandSpec) Validate(sampleRate float64) error {
	_, _, err := b.Normalized(sampleRate)
	return err
}

// Normalized returns the edges divided by the Nyquist frequency. Both lie
// in (0, 1) for a valid band.
func (b BandSpec) Normalized(sampleRate float64) (low, high float64, err error) {
	if !finite(sampleRate) || sampleRate <= 0 {
		return 0, 0, fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidBand, sampleRate)
	}

	if err := b.check(); err != nil {
		return 0, 0, err
	}

	nyquist := sampleRate / 2
	low, high = b.Low/nyquist, b.High/nyquist

	if high >= 1 {
		return 0, 0, fmt.Errorf("%w: high edge %v Hz must be below Nyquist %v Hz", ErrInvalidBand, b.High, nyquist)
	}

	return low, high, nil
}

// Mean returns the arithmetic centre (Low+High)/2.
func (b BandSpec) Mean() float64 { return (b.Low + b.High) / 2 }

// Width returns High-Low.
func (b BandSpec) Width() float64 { return b.High - b.Low }

// Contains reports whether f lies within [Low, High].
func (b BandSpec) Contains(f float64) bool { return f >= b.Low && f <= b.High }

// String formats the band as "[low, high] Hz".
func (b BandSpec) String() string {
	return fmt.Sprintf("[%g, %g] Hz", b.Low, b.High)
}

func validateOrder(order int) error {
	if order < 1 || order > MaxOrder {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidOrder, order, MaxOrder)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
