package audiofile

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/xaionaro-go/audio/pkg/audio"
)

func decodeMP3(r io.Reader) (*Audio, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the MP3 decoder: %w", err)
	}

	// the decoder always yields S16LE stereo
	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("unable to decode the MP3 stream: %w", err)
	}

	const channels = 2
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		samples[i] = float32(int16(binary.LittleEndian.Uint16(pcm[2*i:]))) / 32768
	}
	return &Audio{
		Samples:    downmix(samples[:len(samples)/channels*channels], channels),
		SampleRate: audio.SampleRate(decoder.SampleRate()),
	}, nil
}
