package audiofile

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/xaionaro-go/audio/pkg/audio"
)

func decodeFLAC(r io.Reader) (*Audio, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the FLAC decoder: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	bitDepth := int(stream.Info.BitsPerSample)
	if channels <= 0 || bitDepth <= 0 || bitDepth > 32 || stream.Info.SampleRate == 0 {
		return nil, fmt.Errorf("invalid FLAC stream info: %#+v", *stream.Info)
	}
	scale := float32(int64(1) << (bitDepth - 1))

	var mono []float32
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to parse a FLAC frame: %w", err)
		}
		if len(frame.Subframes) != channels {
			return nil, fmt.Errorf("expected %d subframes, got %d", channels, len(frame.Subframes))
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			var sum float32
			for _, sub := range frame.Subframes {
				sum += float32(sub.Samples[i]) / scale
			}
			mono = append(mono, sum/float32(channels))
		}
	}

	return &Audio{
		Samples:    mono,
		SampleRate: audio.SampleRate(stream.Info.SampleRate),
	}, nil
}
