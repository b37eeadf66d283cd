package capture

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audio/pkg/audio"
)

var _ pcmRecorder = (*audio.RecorderPCMDummy)(nil)

type ctxKey struct{}

type fakeStream struct {
	audio.RecordStream
	closed bool
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakePCMRecorder struct {
	payload []byte
	stream  *fakeStream

	gotCtx        context.Context
	gotSampleRate audio.SampleRate
	gotChannels   audio.Channel
	gotFormat     audio.PCMFormat
}

func (r *fakePCMRecorder) RecordPCM(
	ctx context.Context,
	sampleRate audio.SampleRate,
	channels audio.Channel,
	pcmFormat audio.PCMFormat,
	pcmWriter io.Writer,
) (audio.RecordStream, error) {
	r.gotCtx, r.gotSampleRate, r.gotChannels, r.gotFormat = ctx, sampleRate, channels, pcmFormat
	if len(r.payload) > 0 {
		go pcmWriter.Write(r.payload)
	}
	r.stream = &fakeStream{}
	return r.stream, nil
}

func newTestMicrophone(r *fakePCMRecorder) *Microphone {
	return &Microphone{
		newRecorder: func(context.Context) pcmRecorder { return r },
	}
}

func TestMicrophoneRecord(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "capture")
	r := &fakePCMRecorder{payload: float32Bytes(0.1, -0.2, 0.3, 0.4)}

	samples, err := newTestMicrophone(r).Record(ctx, time.Second, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, -0.2, 0.3}, samples)

	require.NotNil(t, r.gotCtx)
	assert.Equal(t, "capture", r.gotCtx.Value(ctxKey{}))
	assert.Equal(t, audio.SampleRate(3), r.gotSampleRate)
	assert.Equal(t, Channels, r.gotChannels)
	assert.Equal(t, audio.PCMFormatFloat32LE, r.gotFormat)
	assert.True(t, r.stream.closed)
}

func TestMicrophoneRecordCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &fakePCMRecorder{}
	cancel()

	_, err := newTestMicrophone(r).Record(ctx, time.Second, 16000)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, r.stream.closed)
}

func TestMicrophoneRecordNothing(t *testing.T) {
	r := &fakePCMRecorder{}
	_, err := newTestMicrophone(r).Record(context.Background(), 0, 16000)
	assert.Error(t, err)
	assert.Nil(t, r.stream, "the device must not be opened")
}
