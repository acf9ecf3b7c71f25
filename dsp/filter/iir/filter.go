package iir

// Filter runs a TransferFunction in Direct Form II Transposed:
//
//	y[n]   = b0*x[n] + z0
//	z_i    = b_{i+1}*x[n] + z_{i+1} - a_{i+1}*y[n]
//	z_last = b_M*x[n] - a_M*y[n]
type Filter struct {
	b, a []float64
	z    []float64
}

// NewFilter returns a zero-state Filter for tf. The coefficients are copied
// and normalised.
func NewFilter(tf TransferFunction) (*Filter, error) {
	if err := tf.Validate(); err != nil {
		return nil, err
	}

	n := tf.Normalize()

	return &Filter{
		b: n.B,
		a: n.A,
		z: make([]float64, len(n.A)-1),
	}, nil
}

// Order returns the number of delay-line elements.
func (f *Filter) Order() int { return len(f.z) }

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	z := f.z
	if len(z) == 0 {
		return f.b[0] * x
	}

	b, a := f.b, f.a
	y := b[0]*x + z[0]

	last := len(z) - 1
	for i := range last {
		z[i] = b[i+1]*x + z[i+1] - a[i+1]*y
	}

	z[last] = b[last+1]*x - a[last+1]*y

	return y
}

// ProcessBlock filters buf in place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst. len(dst) must be at least len(src).
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1]

	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	for i := range f.z {
		f.z[i] = 0
	}
}

// State returns a copy of the delay line.
func (f *Filter) State() []float64 {
	return append([]float64(nil), f.z...)
}

// SetState loads a delay line. Extra values are ignored and missing ones
// are zeroed.
func (f *Filter) SetState(state []float64) {
	n := copy(f.z, state)
	for i := n; i < len(f.z); i++ {
		f.z[i] = 0
	}
}

// SetScaledState loads state multiplied by level, the usual way to start
// the filter in steady state at a constant input level.
func (f *Filter) SetScaledState(state []float64, level float64) {
	f.SetState(state)

	for i := range f.z {
		f.z[i] *= level
	}
}

// ImpulseResponse returns n samples of the impulse response. The filter
// state is saved and restored.
func (f *Filter) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := f.State()
	f.Reset()

	ir := make([]float64, n)
	ir[0] = f.ProcessSample(1)

	for i := 1; i < n; i++ {
		ir[i] = f.ProcessSample(0)
	}

	f.SetState(saved)

	return ir
}
