// Package audiofiletest writes audio fixtures for tests.
package audiofiletest

import (
	"math"
	"os"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV stores 16-bit PCM interleaved samples (expected within [-1, 1])
// to path.
func WriteWAV(
	tb testing.TB,
	path string,
	interleaved []float64,
	sampleRate int,
	channels int,
) {
	tb.Helper()

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("unable to create '%s': %v", path, err)
	}
	defer f.Close()

	data := make([]int, len(interleaved))
	for i, v := range interleaved {
		data[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * 32767))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		tb.Fatalf("unable to write the WAV data: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("unable to finalize the WAV file: %v", err)
	}
}

// Tone returns a mono sine wave.
func Tone(freqHz float64, amplitude float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	x := make([]float64, n)
	for i := range x {
		x[i] = amplitude * math.Sin(2*math.Pi*freqHz*float64(i)/float64(sampleRate))
	}
	return x
}
