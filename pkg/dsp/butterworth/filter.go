package butterworth

import (
	"fmt"
)

const (
	DefaultHighPassCutoffHz   = 80
	DefaultHighPassOrder      = 5
	DefaultHighPassSampleRate = 16000
)

// Filter runs x through the transfer function (direct form II transposed,
// zero initial state) and returns a new slice.
func (c Coefficients) Filter(x []float64) []float64 {
	n := max(len(c.A), len(c.B))
	b := make([]float64, n)
	a := make([]float64, n)
	a0 := c.A[0]
	for i, v := range c.B {
		b[i] = v / a0
	}
	for i, v := range c.A {
		a[i] = v / a0
	}

	state := make([]float64, n)
	y := make([]float64, len(x))
	for idx, xv := range x {
		yv := b[0]*xv + state[0]
		for i := 1; i < n; i++ {
			state[i-1] = b[i]*xv - a[i]*yv + state[i]
		}
		y[idx] = yv
	}
	return y
}

// HighPass designs a fresh high-pass filter and applies it to samples.
func HighPass(
	samples []float64,
	cutoffHz float64,
	order int,
	sampleRateHz float64,
) ([]float64, error) {
	coeffs, err := Design(TypeHighPass, order, cutoffHz, sampleRateHz)
	if err != nil {
		return nil, fmt.Errorf("unable to design the high-pass filter: %w", err)
	}
	return coeffs.Filter(samples), nil
}
