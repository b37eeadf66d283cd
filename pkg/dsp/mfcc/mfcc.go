// Package mfcc computes time-averaged mel-frequency cepstral coefficients
// compatible with librosa.feature.mfcc.
package mfcc

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrEmptySignal = errors.New("the signal is empty")

// Vector is the per-clip feature vector: one mean value per coefficient.
type Vector []float64

type Extractor struct {
	Config Config
}

func New(cfg Config) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid MFCC config: %w", err)
	}
	return &Extractor{Config: cfg}, nil
}

func (e *Extractor) NumCoeffs() int {
	return e.Config.NumCoeffs
}

// Extract returns a vector of exactly NumCoeffs values regardless of the
// length of samples.
func (e *Extractor) Extract(
	samples []float64,
	sampleRate float64,
) (Vector, error) {
	cfg := e.Config
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("invalid sample rate: %v", sampleRate)
	}
	for idx, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("the signal is not finite at sample %d", idx)
		}
	}
	fMax := cfg.FMax
	if fMax == 0 {
		fMax = sampleRate / 2
	}
	if fMax > sampleRate/2 || fMax <= cfg.FMin {
		return nil, fmt.Errorf("frequency range [%v, %v] does not fit sample rate %v", cfg.FMin, fMax, sampleRate)
	}

	power := powerSpectrogram(samples, cfg.NFFT, cfg.HopLength)

	var melSpec mat.Dense
	melSpec.Mul(melBasis(sampleRate, cfg.NFFT, cfg.NumMels, cfg.FMin, fMax), power)
	powerToDB(&melSpec, cfg.TopDB)

	var cepstrum mat.Dense
	cepstrum.Mul(dctMatrix(cfg.NumCoeffs, cfg.NumMels), &melSpec)

	_, nFrames := cepstrum.Dims()
	result := make(Vector, cfg.NumCoeffs)
	for k := range result {
		result[k] = floats.Sum(cepstrum.RawRowView(k)) / float64(nFrames)
	}
	return result, nil
}

func numFrames(nSamples, hopLength int) int {
	return 1 + nSamples/hopLength
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// powerSpectrogram is a centered, zero-padded STFT with a periodic Hann
// window; the result has one row per FFT bin and one column per frame.
func powerSpectrogram(
	samples []float64,
	nFFT int,
	hopLength int,
) *mat.Dense {
	pad := nFFT / 2
	padded := make([]float64, len(samples)+2*pad)
	copy(padded[pad:], samples)

	nBins := nFFT/2 + 1
	nFrames := numFrames(len(samples), hopLength)
	result := mat.NewDense(nBins, nFrames, nil)

	window := hannWindow(nFFT)
	fft := fourier.NewFFT(nFFT)
	frame := make([]float64, nFFT)
	coeffs := make([]complex128, nBins)
	for t := 0; t < nFrames; t++ {
		start := t * hopLength
		for i := range frame {
			frame[i] = padded[start+i] * window[i]
		}
		coeffs = fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			a := cmplx.Abs(c)
			result.Set(k, t, a*a)
		}
	}
	return result
}

// powerToDB converts in place to decibels relative to 1.0 and clips
// everything more than topDB below the peak.
func powerToDB(m *mat.Dense, topDB float64) {
	raw := m.RawMatrix()
	peak := math.Inf(-1)
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+cols]
		for j, v := range row {
			db := 10 * math.Log10(math.Max(DefaultAmin, v))
			row[j] = db
			peak = math.Max(peak, db)
		}
	}
	floor := peak - topDB
	for i := 0; i < rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+cols]
		for j, v := range row {
			row[j] = math.Max(v, floor)
		}
	}
}
