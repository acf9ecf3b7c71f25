//go:build amd64 && !purego

// Package amd64 registers the biquad kernel for AVX2-capable CPUs.
package amd64

import (
	"github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/generic"
	"github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-rfi/internal/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "avx2",
		SIMDLevel:    cpu.SIMDAVX2,
		Priority:     20,
		ProcessBlock: generic.ProcessBlock4,
	})
}
