// Package iir holds the transfer-function form of a recursive filter and a
// Direct Form II Transposed runtime of arbitrary order.
//
// A [TransferFunction] is a plain value: design it once, share it between
// goroutines, and hand it to as many filtering calls as needed. A [Filter]
// owns the delay line and is not safe for concurrent use.
package iir
