// Package cpu detects the instruction set extensions used to pick a
// filter-cascade block kernel at run time.
//
// Detection runs once, lazily, and the result is cached. Tests may force a
// feature set with SetForcedFeatures to exercise every kernel on one machine.
package cpu

import "sync"

// SIMDLevel names an instruction set extension a kernel is written for.
type SIMDLevel int

const (
	// SIMDNone marks the portable pure-Go kernel.
	SIMDNone SIMDLevel = iota
	// SIMDSSE2 is the amd64 baseline.
	SIMDSSE2
	// SIMDAVX2 is x86-64 AVX2.
	SIMDAVX2
	// SIMDNEON is ARM Advanced SIMD.
	SIMDNEON
)

// String returns a human-readable name for the level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX2:
		return "AVX2"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the capabilities relevant to kernel selection.
type Features struct {
	HasSSE2 bool
	HasAVX2 bool
	HasNEON bool

	// ForceGeneric restricts selection to SIMDNone kernels.
	ForceGeneric bool

	Architecture string
}

var (
	detected   Features
	detectOnce sync.Once
	detectMu   sync.Mutex

	forced   *Features
	forcedMu sync.RWMutex
)

// DetectFeatures returns the features of the running CPU, or the forced
// feature set if one is installed.
func DetectFeatures() Features {
	forcedMu.RLock()
	f := forced
	forcedMu.RUnlock()

	if f != nil {
		return *f
	}

	detectMu.Lock()
	defer detectMu.Unlock()

	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})

	return detected
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMu.Lock()
	defer forcedMu.Unlock()

	forced = &f
}

// ResetDetection drops forced features and the detection cache.
func ResetDetection() {
	forcedMu.Lock()
	forced = nil
	forcedMu.Unlock()

	detectMu.Lock()
	detectOnce = sync.Once{}
	detected = Features{}
	detectMu.Unlock()
}

// Supports reports whether a kernel written for level can run on features.
func Supports(features Features, level SIMDLevel) bool {
	if features.ForceGeneric {
		return level == SIMDNone
	}

	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return features.HasSSE2
	case SIMDAVX2:
		return features.HasAVX2
	case SIMDNEON:
		return features.HasNEON
	default:
		return false
	}
}
