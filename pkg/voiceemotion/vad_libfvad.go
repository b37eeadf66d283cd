//go:build !no_libfvad && !windows
// +build !no_libfvad,!windows

package voiceemotion

import (
	"context"
	"time"

	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
	"github.com/xaionaro-go/emotionfusion/pkg/vad/implementations/libfvad"
)

const (
	WebRTCVADMode             = 3
	WebRTCVADMinVoiceDuration = 90 * time.Millisecond
)

func newWebRTCVAD(
	_ context.Context,
	sampleRate audio.SampleRate,
) (vad.VAD, error) {
	return libfvad.NewVAD(sampleRate, WebRTCVADMode, WebRTCVADMinVoiceDuration)
}
