package mfcc

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Slaney's auditory toolbox mel scale: linear below 1 kHz, logarithmic above.
const (
	melFSp       = 200.0 / 3
	melMinLogHz  = 1000.0
	melMinLogMel = melMinLogHz / melFSp
)

var melLogStep = math.Log(6.4) / 27.0

func hzToMel(hz float64) float64 {
	if hz >= melMinLogHz {
		return melMinLogMel + math.Log(hz/melMinLogHz)/melLogStep
	}
	return hz / melFSp
}

func melToHz(mel float64) float64 {
	if mel >= melMinLogMel {
		return melMinLogHz * math.Exp(melLogStep*(mel-melMinLogMel))
	}
	return melFSp * mel
}

func linspace(from, to float64, n int) []float64 {
	r := make([]float64, n)
	if n == 1 {
		r[0] = from
		return r
	}
	step := (to - from) / float64(n-1)
	for i := range r {
		r[i] = from + float64(i)*step
	}
	return r
}

// melBasis builds the Slaney-normalized triangular filter bank, one row per
// mel band, one column per FFT bin.
func melBasis(
	sampleRate float64,
	nFFT int,
	nMels int,
	fMin, fMax float64,
) *mat.Dense {
	nBins := nFFT/2 + 1
	fftFreqs := linspace(0, sampleRate/2, nBins)

	mels := linspace(hzToMel(fMin), hzToMel(fMax), nMels+2)
	melF := make([]float64, len(mels))
	for i, m := range mels {
		melF[i] = melToHz(m)
	}

	weights := mat.NewDense(nMels, nBins, nil)
	for i := 0; i < nMels; i++ {
		lowerWidth := melF[i+1] - melF[i]
		upperWidth := melF[i+2] - melF[i+1]
		enorm := 2.0 / (melF[i+2] - melF[i])
		for j, f := range fftFreqs {
			lower := (f - melF[i]) / lowerWidth
			upper := (melF[i+2] - f) / upperWidth
			w := math.Max(0, math.Min(lower, upper))
			weights.Set(i, j, w*enorm)
		}
	}
	return weights
}

// dctMatrix returns the first nOut rows of the orthonormal DCT-II of size n.
func dctMatrix(nOut, n int) *mat.Dense {
	d := mat.NewDense(nOut, n, nil)
	scale0 := math.Sqrt(1 / float64(n))
	scale := math.Sqrt(2 / float64(n))
	for k := 0; k < nOut; k++ {
		s := scale
		if k == 0 {
			s = scale0
		}
		for i := 0; i < n; i++ {
			d.Set(k, i, s*math.Cos(math.Pi*float64(k)*float64(2*i+1)/float64(2*n)))
		}
	}
	return d
}
