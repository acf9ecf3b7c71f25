// Package biquad provides the second-order-section runtime used for the
// cascade form of a bandstop design.
//
// A [Section] implements Direct Form II Transposed processing for one set of
// [Coefficients]. A [Chain] runs sections in series and exposes its delay
// lines so that a zero-phase pass can seed them with steady-state values.
// Block processing is dispatched to the fastest kernel registered for the
// running CPU.
package biquad
