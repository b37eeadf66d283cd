package capture

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audio/pkg/audio"
)

// CaptureGrace is how much longer than the requested duration we wait for
// the device before giving up.
const CaptureGrace = 3 * time.Second

type pcmRecorder interface {
	RecordPCM(
		ctx context.Context,
		sampleRate audio.SampleRate,
		channels audio.Channel,
		pcmFormat audio.PCMFormat,
		pcmWriter io.Writer,
	) (audio.RecordStream, error)
}

var _ pcmRecorder = (*audio.Recorder)(nil)

// Microphone records from the default input device of whatever audio
// backend is registered (see the audio/backends packages).
type Microphone struct {
	newRecorder func(context.Context) pcmRecorder
}

var _ Recorder = (*Microphone)(nil)

func NewMicrophone() *Microphone {
	return &Microphone{
		newRecorder: func(ctx context.Context) pcmRecorder {
			return audio.NewRecorderAuto(ctx)
		},
	}
}

func (m *Microphone) Record(
	ctx context.Context,
	duration time.Duration,
	sampleRate audio.SampleRate,
) (_ret []float32, _err error) {
	logger.Debugf(ctx, "Record(ctx, %v, %d)", duration, sampleRate)
	defer func() { logger.Debugf(ctx, "/Record(ctx, %v, %d): len:%d %v", duration, sampleRate, len(_ret), _err) }()

	numSamples := NumSamples(duration, sampleRate)
	if numSamples <= 0 {
		return nil, fmt.Errorf("nothing to record: %v at %d Hz", duration, sampleRate)
	}
	pcmFormat := audio.PCMFormatFloat32LE
	c := newCollector(numSamples * 4 * int(Channels))

	recorder := m.newRecorder(ctx)
	logger.Debugf(ctx, "using %T as the audio input", recorder)
	stream, err := recorder.RecordPCM(ctx, sampleRate, Channels, pcmFormat, c)
	if err != nil {
		return nil, fmt.Errorf("unable to start recording: %w", err)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			_err = multierror.Append(_err, fmt.Errorf("unable to close the recording stream: %w", err)).ErrorOrNil()
		}
	}()

	timeout := time.NewTimer(duration + CaptureGrace)
	defer timeout.Stop()
	select {
	case <-c.Done():
	case <-timeout.C:
		return nil, fmt.Errorf("the input device delivered only %d of %d samples within %v", len(c.Samples()), numSamples, duration+CaptureGrace)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return c.Samples(), nil
}
