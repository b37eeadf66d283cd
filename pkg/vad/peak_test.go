package vad

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeak(t *testing.T) {
	ctx := context.Background()
	v := NewPeak(DefaultPeakThreshold)
	defer v.Close()

	silent, err := v.IsSilent(ctx, []float32{0.01, -0.01, 0.005}, 16000)
	require.NoError(t, err)
	assert.True(t, silent)

	silent, err = v.IsSilent(ctx, []float32{0.01, -0.02, 0.005}, 16000)
	require.NoError(t, err)
	assert.False(t, silent, "the threshold itself is not silence")

	silent, err = v.IsSilent(ctx, nil, 16000)
	require.NoError(t, err)
	assert.True(t, silent)
}

func TestPeakAmplitude(t *testing.T) {
	assert.Zero(t, PeakAmplitude(nil))
	assert.InDelta(t, 0.7, PeakAmplitude([]float32{0.1, -0.7, 0.3}), 1e-6)
}

func TestDummy(t *testing.T) {
	silent, err := NewDummy().IsSilent(context.Background(), nil, 16000)
	require.NoError(t, err)
	assert.False(t, silent)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Peak")
	require.NoError(t, err)
	assert.Equal(t, KindPeak, k)

	require.NoError(t, k.Set("libfvad"))
	assert.Equal(t, KindWebRTC, k)

	require.NoError(t, k.UnmarshalText([]byte("webrtc")))
	assert.Equal(t, KindWebRTC, k)
	b, err := k.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "webrtc", string(b))

	_, err = ParseKind("rnnoise")
	assert.EqualError(t, err, "unknown VAD kind 'rnnoise', known values are: peak, webrtc")
}
