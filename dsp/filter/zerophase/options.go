package zerophase

import "fmt"

// PadType selects how the input is extended before filtering.
type PadType int

const (
	// PadOdd extends with 2*x[0] - x[i] on the left and
	// 2*x[L-1] - x[L-1-i] on the right. It keeps value and slope
	// continuous at the edges.
	PadOdd PadType = iota
	// PadEven mirrors the signal about its end samples.
	PadEven
	// PadConstant repeats the end samples.
	PadConstant
	// PadNone filters the bare input.
	PadNone
)

func (p PadType) String() string {
	switch p {
	case PadOdd:
		return "odd"
	case PadEven:
		return "even"
	case PadConstant:
		return "constant"
	case PadNone:
		return "none"
	default:
		return fmt.Sprintf("PadType(%d)", int(p))
	}
}

// Option configures Apply and ApplySections.
type Option func(*config)

type config struct {
	padType PadType
	padLen  int // negative selects the default for the filter length
}

func defaultConfig() config {
	return config{padType: PadOdd, padLen: -1}
}

// WithPadType selects the extension mode. Unknown values are ignored.
func WithPadType(t PadType) Option {
	return func(cfg *config) {
		if t >= PadOdd && t <= PadNone {
			cfg.padType = t
		}
	}
}

// WithPadLen overrides the number of samples added at each end. The
// default is three times the number of filter taps. Negative values are
// ignored.
func WithPadLen(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.padLen = n
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// resolvePadLen returns the extension length for a filter with ntaps taps.
func (cfg config) resolvePadLen(ntaps int) int {
	switch {
	case cfg.padType == PadNone:
		return 0
	case cfg.padLen >= 0:
		return cfg.padLen
	default:
		return 3 * ntaps
	}
}
