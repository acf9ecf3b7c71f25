// Package design computes Butterworth bandstop filters for suppressing an
// interference band.
//
// The pipeline is the classical one: an analog Butterworth lowpass
// prototype, pre-warped band edges, the lowpass-to-bandstop transform, and
// the bilinear transform. Poles and zeros travel through it as [RootPair]
// records so that conjugate roots stay together and expand into real
// quadratic factors.
//
// [Bandstop] returns the transfer-function form consumed by
// dsp/filter/iir and dsp/filter/zerophase; [BandstopSections] returns the
// equivalent second-order-section cascade for dsp/filter/biquad, which
// keeps its precision at high orders.
package design
