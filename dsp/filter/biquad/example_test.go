package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-rfi/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		var x float64
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.6f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
}

func ExampleSteadyState() {
	coeffs := []biquad.Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
	}

	chain := biquad.NewChain(coeffs)
	chain.SetState(biquad.SteadyState(coeffs))

	fmt.Printf("%.4f %.4f\n", chain.ProcessSample(1), chain.ProcessSample(1))
	// Output:
	// 1.1905 1.1905
}
