//go:build !no_libfvad && !windows

package libfvad

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilenceIsSilent(t *testing.T) {
	v, err := NewVAD(16000, 3, 100*time.Millisecond)
	require.NoError(t, err)
	defer v.Close()

	silent, err := v.IsSilent(context.Background(), make([]float32, 32000), 16000)
	require.NoError(t, err)
	assert.True(t, silent)

	_, err = v.IsSilent(context.Background(), make([]float32, 100), 44100)
	assert.Error(t, err)
}

func TestNewVADRejectsUnsupportedSampleRates(t *testing.T) {
	_, err := NewVAD(44100, 3, time.Millisecond)
	assert.Error(t, err)
}

func TestConvertFloat32ToInt16Slice(t *testing.T) {
	assert.Equal(t, []int16{0, 32767, -32767, 32767, -32768}, convertFloat32ToInt16Slice([]float32{0, 1, -1, 2, -2}))
}
