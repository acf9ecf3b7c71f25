package biquad

import (
	"math"
	"sync"

	archregistry "github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-rfi/internal/cpu"
)

// Coefficients holds one second-order section. a0 is normalised to 1 and
// not stored.
//
// Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// DCGain returns H(z=1). It is +Inf when the denominator vanishes at DC.
func (c Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return math.Inf(1)
	}

	return (c.B0 + c.B1 + c.B2) / den
}

// Stable reports whether both poles lie strictly inside the unit circle
// (stability triangle |A2| < 1, |A1| < 1 + A2).
func (c Coefficients) Stable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// SteadyState returns the delay-line values the section holds after a unit
// step has settled. Scaling them by a constant level v makes the section
// output DCGain()*v from the first sample.
func (c Coefficients) SteadyState() [2]float64 {
	k := c.DCGain()
	if math.IsInf(k, 0) {
		return [2]float64{}
	}

	d1 := c.B2 - c.A2*k
	d0 := c.B1 - c.A1*k + d1

	return [2]float64{d0, d1}
}

// Section is a single biquad with internal state.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	processBlockInitOnce.Do(initProcessBlockKernel)

	c := archregistry.Coefficients{
		B0: s.B0, B1: s.B1, B2: s.B2,
		A1: s.A1, A2: s.A2,
	}

	s.d0, s.d1 = processBlockImpl(c, s.d0, s.d1, buf)
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	processBlockImpl = entry.ProcessBlock
}

// Reset clears the delay line.
func (s *Section) Reset() {
	s.d0, s.d1 = 0, 0
}

// State returns the delay line [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a delay line.
func (s *Section) SetState(state [2]float64) {
	s.d0, s.d1 = state[0], state[1]
}
