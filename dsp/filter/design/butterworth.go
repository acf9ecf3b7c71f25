package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-rfi/dsp/filter/biquad"
	"github.com/cwbudde/algo-rfi/dsp/filter/iir"
)

// Bandstop designs an order-N Butterworth bandstop filter rejecting band
// at sampleRate. The result has 2N+1 taps in each polynomial, A[0] == 1,
// and unity gain at DC and Nyquist.
//
// Expanding the poles into one denominator loses precision as the order
// grows and the band narrows or approaches DC. When the expanded
// denominator is no longer stable Bandstop returns an error wrapping
// ErrUnstableFilter; BandstopSections stays stable up to MaxOrder.
func Bandstop(sampleRate float64, band BandSpec, order int) (iir.TransferFunction, error) {
	z, err := BandstopZPK(sampleRate, band, order)
	if err != nil {
		return iir.TransferFunction{}, err
	}

	tf := z.TransferFunction()
	if err := tf.CheckStable(); err != nil {
		return iir.TransferFunction{}, fmt.Errorf("%w (order %d over %v, use BandstopSections)", err, order, band)
	}

	return tf, nil
}

// BandstopSections designs the same filter as Bandstop in cascaded
// second-order-section form.
func BandstopSections(sampleRate float64, band BandSpec, order int) ([]biquad.Coefficients, error) {
	z, err := BandstopZPK(sampleRate, band, order)
	if err != nil {
		return nil, err
	}

	return z.Sections(), nil
}

// BandstopZPK returns the digital poles, zeros, and gain of the order-N
// Butterworth bandstop filter.
func BandstopZPK(sampleRate float64, band BandSpec, order int) (ZPK, error) {
	if _, _, err := band.Normalized(sampleRate); err != nil {
		return ZPK{}, err
	}

	if err := validateOrder(order); err != nil {
		return ZPK{}, err
	}

	c := 2 * sampleRate
	wl := prewarp(band.Low, sampleRate)
	wh := prewarp(band.High, sampleRate)

	analog := lowpassToBandstop(butterworthPrototype(order), wh-wl, math.Sqrt(wl*wh))

	return bilinear(analog, c, sampleRate), nil
}

// prewarp maps a digital frequency in Hz to the analog frequency in rad/s
// that the bilinear transform with c = 2*fs sends back to it.
func prewarp(freqHz, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freqHz/sampleRate)
}

// analogPrototype holds the unit-cutoff lowpass poles: one representative
// from the upper half plane for each conjugate pair, plus the real pole -1
// when the order is odd. It has no finite zeros and unity DC gain.
type analogPrototype struct {
	order    int
	upper    []complex128
	realPole bool
}

func butterworthPrototype(order int) analogPrototype {
	p := analogPrototype{
		order:    order,
		upper:    make([]complex128, 0, order/2),
		realPole: order%2 == 1,
	}

	for k := range order / 2 {
		theta := math.Pi/2 + float64(2*k+1)*math.Pi/float64(2*order)
		p.upper = append(p.upper, cmplx.Rect(1, theta))
	}

	return p
}

// lowpassToBandstop applies s -> bw*s / (s^2 + w0^2). Every prototype pole
// p splits into the two roots of s^2 - (bw/p)s + w0^2; a conjugate pair of
// prototype poles therefore yields two conjugate pairs. Each prototype
// pole contributes a zero pair at +-j*w0.
func lowpassToBandstop(p analogPrototype, bw, w0 float64) ZPK {
	out := ZPK{
		Zeros: make([]RootPair, 0, p.order),
		Poles: make([]RootPair, 0, p.order),
		Gain:  1,
	}

	split := func(pole complex128) (complex128, complex128) {
		h := complex(bw/2, 0) / pole
		d := cmplx.Sqrt(h*h - complex(w0*w0, 0))

		return h + d, h - d
	}

	for _, pole := range p.upper {
		// k / prod(-p) for the conjugate pair.
		out.Gain /= real(pole * cmplx.Conj(pole))

		q1, q2 := split(pole)
		out.Poles = append(out.Poles,
			RootPair{q1, cmplx.Conj(q1)},
			RootPair{q2, cmplx.Conj(q2)},
		)
	}

	if p.realPole {
		q1, q2 := split(-1)
		out.Poles = append(out.Poles, RootPair{q1, q2})
	}

	zero := RootPair{complex(0, w0), complex(0, -w0)}
	for range p.order {
		out.Zeros = append(out.Zeros, zero)
	}

	return out
}

// bilinear maps an analog ZPK to the z-plane with z = (c+s)/(c-s). The gain
// picks up prod(c - z_i)/prod(c - p_i), evaluated pairwise in real
// arithmetic.
func bilinear(analog ZPK, c, sampleRate float64) ZPK {
	m := func(s complex128) complex128 {
		return (complex(c, 0) + s) / (complex(c, 0) - s)
	}

	out := ZPK{
		Zeros:      make([]RootPair, len(analog.Zeros)),
		Poles:      make([]RootPair, len(analog.Poles)),
		Gain:       analog.Gain,
		SampleRate: sampleRate,
	}

	for i, z := range analog.Zeros {
		out.Gain *= z.at(c)
		out.Zeros[i] = z.mapRoots(m)
	}

	for i, p := range analog.Poles {
		out.Gain /= p.at(c)
		out.Poles[i] = p.mapRoots(m)
	}

	return out
}
