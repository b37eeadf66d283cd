package vad

import (
	"context"
	"io"

	"github.com/xaionaro-go/audio/pkg/audio"
)

// VAD decides whether a captured clip is worth classifying at all.
type VAD interface {
	io.Closer

	IsSilent(
		_ context.Context,
		samples []float32,
		sampleRate audio.SampleRate,
	) (bool, error)
}
