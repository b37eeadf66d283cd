package libfvad

import (
	"context"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/josharian/fvad"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
)

// VAD uses the WebRTC voice activity detector: a clip is silent unless it
// contains at least MinVoiceDuration of voice.
//
// fvad.Detector is stateful, so a VAD must not be used concurrently.
type VAD struct {
	*fvad.Detector
	SampleRate       audio.SampleRate
	MinVoiceDuration time.Duration
}

var _ vad.VAD = (*VAD)(nil)

func NewVAD(
	sampleRate audio.SampleRate,
	sensitivityMode int,
	minVoiceDuration time.Duration,
) (*VAD, error) {
	detector := fvad.NewDetector()
	if err := detector.SetSampleRate(int(sampleRate)); err != nil {
		detector.Close()
		return nil, fmt.Errorf("unable to set the sample rate: %w", err)
	}
	if err := detector.SetMode(sensitivityMode); err != nil {
		detector.Close()
		return nil, fmt.Errorf("unable to set the sensitivity mode: %w", err)
	}
	return &VAD{
		SampleRate:       sampleRate,
		Detector:         detector,
		MinVoiceDuration: minVoiceDuration,
	}, nil
}

func (v *VAD) Close() error {
	v.Detector.Close()
	return nil
}

func (v *VAD) IsSilent(
	ctx context.Context,
	samples []float32,
	sampleRate audio.SampleRate,
) (bool, error) {
	if sampleRate != v.SampleRate {
		return false, fmt.Errorf("the detector is configured for %d Hz, but the clip is %d Hz", v.SampleRate, sampleRate)
	}
	voiceFor, err := v.voiceDuration(convertFloat32ToInt16Slice(samples))
	if err != nil {
		return false, err
	}
	logger.Tracef(ctx, "found voice for %v (required: %v)", voiceFor, v.MinVoiceDuration)
	return voiceFor < v.MinVoiceDuration, nil
}

func (v *VAD) voiceDuration(samples []int16) (time.Duration, error) {
	// see the description of (*fvad.Detector).Process
	minPortion := v.pieceSize10Ms()
	midPortion := minPortion * 2
	maxPortion := minPortion * 3

	var foundVoiceFor time.Duration
	for {
		var (
			frame       []int16
			curDuration time.Duration
		)
		switch {
		case len(samples) >= maxPortion:
			frame = samples[:maxPortion]
			curDuration = 30 * time.Millisecond
		case len(samples) >= midPortion:
			frame = samples[:midPortion]
			curDuration = 20 * time.Millisecond
		case len(samples) >= minPortion:
			frame = samples[:minPortion]
			curDuration = 10 * time.Millisecond
		default:
			return foundVoiceFor, nil
		}
		samples = samples[len(frame):]

		isVoice, err := v.Detector.Process(frame)
		if err != nil {
			return foundVoiceFor, err
		}
		if isVoice {
			foundVoiceFor += curDuration
			if foundVoiceFor >= v.MinVoiceDuration {
				return foundVoiceFor, nil
			}
		}
	}
}

func (v *VAD) pieceSize10Ms() int {
	return int(v.SampleRate) / 100
}
