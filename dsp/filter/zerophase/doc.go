// Package zerophase applies IIR filters forward and backward so that the
// result has no phase shift and the squared magnitude response of the
// underlying filter.
//
// Before filtering, the input is extended at both ends (odd reflection by
// default) and the filter state is initialised to its steady-state
// response to the first sample of each pass. The extension is trimmed off
// again, so the output always has the length of the input.
//
// Both entry points are pure: they allocate their own buffers, never
// modify the input, and may be called concurrently.
package zerophase
