// Package butterworth designs digital Butterworth filters (matching
// scipy.signal.butter with the bilinear transform) and applies them the way
// scipy.signal.lfilter does.
package butterworth

import (
	"fmt"
	"math"
	"math/cmplx"
)

type Type int

const (
	TypeUndefined = Type(iota)
	TypeLowPass
	TypeHighPass
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeLowPass:
		return "lowpass"
	case TypeHighPass:
		return "highpass"
	}
	return fmt.Sprintf("unknown_%d", int(t))
}

// Coefficients is a transfer function: B is the numerator, A is the
// denominator, both highest power first, A[0] == 1.
type Coefficients struct {
	B []float64
	A []float64
}

// Design returns the transfer function of an order-N digital Butterworth
// filter with the cutoff at cutoffHz for the given sample rate.
func Design(
	filterType Type,
	order int,
	cutoffHz float64,
	sampleRateHz float64,
) (Coefficients, error) {
	if order < 1 {
		return Coefficients{}, fmt.Errorf("order must be positive, got %d", order)
	}
	if sampleRateHz <= 0 {
		return Coefficients{}, fmt.Errorf("sample rate must be positive, got %v", sampleRateHz)
	}
	nyquist := 0.5 * sampleRateHz
	wn := cutoffHz / nyquist
	if !(wn > 0 && wn < 1) {
		return Coefficients{}, fmt.Errorf("cutoff %v Hz must be within (0, %v) Hz", cutoffHz, nyquist)
	}

	// analog prototype: no zeros, poles on the left half of the unit circle
	poles := make([]complex128, order)
	for i := range poles {
		m := float64(-order + 1 + 2*i)
		poles[i] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order)))
	}

	// pre-warp for the bilinear transform at fs == 2
	const fs = 2.0
	warped := 2 * fs * math.Tan(math.Pi*wn/fs)

	var (
		zeros []complex128
		gain  float64
	)
	switch filterType {
	case TypeLowPass:
		prod := complex(1, 0)
		for i := range poles {
			poles[i] *= complex(warped, 0)
			prod *= -poles[i]
		}
		gain = real(prod)
	case TypeHighPass:
		prod := complex(1, 0)
		for i := range poles {
			prod *= -poles[i]
			poles[i] = complex(warped, 0) / poles[i]
		}
		gain = real(1 / prod)
		zeros = make([]complex128, order)
	default:
		return Coefficients{}, fmt.Errorf("unsupported filter type: %s", filterType)
	}

	zz, pz, kz := bilinear(zeros, poles, gain, fs)
	b := poly(zz)
	a := poly(pz)
	coeffs := Coefficients{
		B: make([]float64, len(b)),
		A: make([]float64, len(a)),
	}
	for i := range b {
		coeffs.B[i] = kz * real(b[i])
	}
	for i := range a {
		coeffs.A[i] = real(a[i])
	}
	return coeffs, nil
}

func bilinear(
	zeros, poles []complex128,
	gain float64,
	fs float64,
) ([]complex128, []complex128, float64) {
	fs2 := complex(2*fs, 0)

	zz := make([]complex128, 0, len(poles))
	num := complex(1, 0)
	for _, z := range zeros {
		zz = append(zz, (fs2+z)/(fs2-z))
		num *= fs2 - z
	}
	// zeros at infinity are mapped to Nyquist
	for len(zz) < len(poles) {
		zz = append(zz, -1)
	}

	pz := make([]complex128, len(poles))
	den := complex(1, 0)
	for i, p := range poles {
		pz[i] = (fs2 + p) / (fs2 - p)
		den *= fs2 - p
	}

	return zz, pz, gain * real(num/den)
}

// poly expands prod(x - r) into coefficients, highest power first.
func poly(roots []complex128) []complex128 {
	c := make([]complex128, 1, len(roots)+1)
	c[0] = 1
	for _, r := range roots {
		c = append(c, 0)
		for i := len(c) - 1; i > 0; i-- {
			c[i] -= r * c[i-1]
		}
	}
	return c
}
