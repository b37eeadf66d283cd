//go:build no_libfvad || windows
// +build no_libfvad windows

package voiceemotion

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
)

func newWebRTCVAD(
	ctx context.Context,
	_ audio.SampleRate,
) (vad.VAD, error) {
	logger.Warnf(ctx, "built without libfvad, the WebRTC silence gate is disabled")
	return vad.NewDummy(), nil
}
