// Package generic provides the portable biquad block kernels.
package generic

import (
	"github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-rfi/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "generic",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     0,
		ProcessBlock: ProcessBlock2,
	})
}

// ProcessBlock2 is a 2x-unrolled scalar kernel.
func ProcessBlock2(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)

	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		t0 := b1*x0 - a1*y0 + d1
		t1 := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + t0
		d0 = b1*x1 - a1*y1 + t1
		d1 = b2*x1 - a2*y1

		buf[i], buf[i+1] = y0, y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}

// ProcessBlock4 is a 4x-unrolled scalar kernel used by the wide-register
// backends; the longer body gives their out-of-order cores more to schedule.
func ProcessBlock4(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)

	for ; i+3 < n; i += 4 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		p0 := b1*x0 - a1*y0 + d1
		q0 := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + p0
		p1 := b1*x1 - a1*y1 + q0
		q1 := b2*x1 - a2*y1

		x2 := buf[i+2]
		y2 := b0*x2 + p1
		p2 := b1*x2 - a1*y2 + q1
		q2 := b2*x2 - a2*y2

		x3 := buf[i+3]
		y3 := b0*x3 + p2
		d0 = b1*x3 - a1*y3 + q2
		d1 = b2*x3 - a2*y3

		buf[i], buf[i+1], buf[i+2], buf[i+3] = y0, y1, y2, y3
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
