// Package capture records fixed-duration mono clips from the default
// input device.
package capture

import (
	"context"
	"time"

	"github.com/xaionaro-go/audio/pkg/audio"
)

const (
	DefaultDuration   = 2 * time.Second
	DefaultSampleRate = audio.SampleRate(16000)
	Channels          = audio.Channel(1)
)

// Recorder captures a clip of mono float samples. Record blocks until the
// whole duration is captured; only one capture may be in flight at a time.
type Recorder interface {
	Record(
		ctx context.Context,
		duration time.Duration,
		sampleRate audio.SampleRate,
	) ([]float32, error)
}

// NumSamples is the amount of samples a clip of the given duration has.
func NumSamples(duration time.Duration, sampleRate audio.SampleRate) int {
	return int(duration.Seconds() * float64(sampleRate))
}
