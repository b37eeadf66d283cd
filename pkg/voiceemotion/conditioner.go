package voiceemotion

import (
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/butterworth"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/mfcc"
)

// Conditioner cleans up live-captured audio before feature extraction.
type Conditioner interface {
	Condition(samples []float64, sampleRate float64) ([]float64, error)
}

// FeatureExtractor turns a clip into a fixed-length feature vector.
type FeatureExtractor interface {
	NumCoeffs() int
	Extract(samples []float64, sampleRate float64) (mfcc.Vector, error)
}

var _ FeatureExtractor = (*mfcc.Extractor)(nil)

// HighPass removes DC offset and low-frequency hum. The filter is designed
// anew on every call.
type HighPass struct {
	CutoffHz float64
	Order    int
}

var _ Conditioner = HighPass{}

func (hp HighPass) Condition(samples []float64, sampleRate float64) ([]float64, error) {
	return butterworth.HighPass(samples, hp.CutoffHz, hp.Order, sampleRate)
}
