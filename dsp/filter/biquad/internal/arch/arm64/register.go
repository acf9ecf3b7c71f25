//go:build arm64 && !purego

// Package arm64 registers the biquad kernel for NEON-capable CPUs.
package arm64

import (
	"github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/generic"
	"github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-rfi/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "neon",
		SIMDLevel:    cpu.SIMDNEON,
		Priority:     15,
		ProcessBlock: generic.ProcessBlock4,
	})
}
