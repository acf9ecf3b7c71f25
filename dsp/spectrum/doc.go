// Package spectrum measures the frequency content of filtered signals.
//
// [Analyze] windows a real signal, runs an FFT, and returns a single-sided
// amplitude spectrum in which a bin-centred sine of amplitude A reads A.
// [ToneAmplitude] uses the Goertzel recursion to read one frequency
// without a full transform.
package spectrum
