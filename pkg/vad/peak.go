package vad

import (
	"context"
	"math"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audio/pkg/audio"
)

const DefaultPeakThreshold = 0.02

// Peak considers a clip silent if its peak absolute amplitude is below
// the threshold.
type Peak struct {
	Threshold float64
}

var _ VAD = (*Peak)(nil)

func NewPeak(threshold float64) *Peak {
	return &Peak{Threshold: threshold}
}

func (*Peak) Close() error {
	return nil
}

func (v *Peak) IsSilent(
	ctx context.Context,
	samples []float32,
	_ audio.SampleRate,
) (bool, error) {
	p := PeakAmplitude(samples)
	logger.Tracef(ctx, "peak amplitude: %f (threshold: %f)", p, v.Threshold)
	return p < v.Threshold, nil
}

func PeakAmplitude(samples []float32) float64 {
	var p float64
	for _, s := range samples {
		p = math.Max(p, math.Abs(float64(s)))
	}
	return p
}
