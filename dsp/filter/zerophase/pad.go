package zerophase

import "fmt"

// checkLength enforces len(x) > padLen, which every extension mode needs
// to reflect padLen samples without reaching past the far end.
func checkLength(n, padLen int) error {
	if n == 0 {
		return fmt.Errorf("%w: empty input", ErrInsufficientData)
	}

	if n <= padLen {
		return fmt.Errorf("%w: %d samples, need at least %d", ErrInsufficientData, n, padLen+1)
	}

	return nil
}

// extend returns x with padLen samples added at each end. The caller has
// already checked len(x) > padLen.
func extend(x []float64, padType PadType, padLen int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*padLen)
	copy(ext[padLen:], x)

	first, last := x[0], x[n-1]

	for i := 1; i <= padLen; i++ {
		l, r := padLen-i, padLen+n-1+i

		switch padType {
		case PadOdd:
			ext[l] = 2*first - x[i]
			ext[r] = 2*last - x[n-1-i]
		case PadEven:
			ext[l] = x[i]
			ext[r] = x[n-1-i]
		case PadConstant:
			ext[l] = first
			ext[r] = last
		}
	}

	return ext
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// trim copies the centre len(ext)-2*padLen samples into a new slice.
func trim(ext []float64, padLen int) []float64 {
	out := make([]float64, len(ext)-2*padLen)
	copy(out, ext[padLen:])

	return out
}
