package biquad

// Chain is an ordered cascade of sections processed in series.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade with one zero-state Section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample runs x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the number of sections.
func (c *Chain) NumSections() int { return len(c.sections) }

// Order returns the total filter order, two per section.
func (c *Chain) Order() int { return 2 * len(c.sections) }

// Section returns the i-th section.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// State returns a snapshot of every section's delay line.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores delay lines. len(states) must equal NumSections.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}

// SteadyState returns per-section delay lines for a unit step settled at
// the cascade input. Each section's state is scaled by the DC gain of the
// sections in front of it.
func SteadyState(coeffs []Coefficients) [][2]float64 {
	states := make([][2]float64, len(coeffs))
	scale := 1.0

	for i, c := range coeffs {
		zi := c.SteadyState()
		states[i] = [2]float64{scale * zi[0], scale * zi[1]}
		scale *= c.DCGain()
	}

	return states
}
