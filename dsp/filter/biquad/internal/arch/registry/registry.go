// Package registry holds the biquad block kernels available to this build
// and picks one for the running CPU.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-rfi/internal/cpu"
)

// Coefficients are biquad coefficients with a0 normalised to 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// ProcessBlockFn filters buf in place with one section starting from the
// delay line (d0, d1) and returns the final delay line.
type ProcessBlockFn func(c Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64)

// OpEntry is one registered kernel.
type OpEntry struct {
	Name         string
	SIMDLevel    cpu.SIMDLevel
	Priority     int
	ProcessBlock ProcessBlockFn
}

// OpRegistry stores the registered kernels.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
}

// Global is the registry populated by the arch packages' init functions.
var Global = &OpRegistry{}

// Register adds an entry, keeping entries ordered by descending priority.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
}

// Lookup returns the highest-priority entry supported by features, or nil.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			e := r.entries[i]
			return &e
		}
	}

	return nil
}

// ListEntries returns a copy of the entries.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]OpEntry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Reset drops all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}
