package audiofile

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
	"github.com/xaionaro-go/audio/pkg/audio"
)

func decodeOGG(r io.Reader) (*Audio, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to decode the Vorbis stream: %w", err)
	}
	if format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid Vorbis format: %#+v", *format)
	}
	return &Audio{
		Samples:    downmix(samples, format.Channels),
		SampleRate: audio.SampleRate(format.SampleRate),
	}, nil
}
