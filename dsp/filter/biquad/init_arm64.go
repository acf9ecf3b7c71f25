//go:build arm64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/arm64"   // register NEON backend
	_ "github.com/cwbudde/algo-rfi/dsp/filter/biquad/internal/arch/generic" // register generic backend
)
