// Package audiofile loads audio files as mono float samples at the sample
// rate they were encoded with.
package audiofile

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audio/pkg/audio"
)

type Audio struct {
	Samples    []float32
	SampleRate audio.SampleRate
}

func (a *Audio) Duration() time.Duration {
	if a.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(time.Second) * float64(len(a.Samples)) / float64(a.SampleRate))
}

// Float64 returns a copy of the samples in double precision.
func (a *Audio) Float64() []float64 {
	result := make([]float64, len(a.Samples))
	for i, v := range a.Samples {
		result[i] = float64(v)
	}
	return result
}

func Load(
	ctx context.Context,
	path string,
) (_ret *Audio, _err error) {
	logger.Debugf(ctx, "Load('%s')", path)
	defer func() { logger.Debugf(ctx, "/Load('%s'): %v", path, _err) }()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open '%s': %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			_err = multierror.Append(_err, fmt.Errorf("unable to close '%s': %w", path, err)).ErrorOrNil()
		}
	}()

	header := make([]byte, 12)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("unable to read the header of '%s': %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("unable to rewind '%s': %w", path, err)
	}

	format := FormatFromHeader(header[:n])
	if format == FormatUndefined {
		format = FormatFromPath(path)
	}
	if format == FormatUndefined {
		return nil, ErrUnsupportedFormat{Path: path}
	}
	logger.Debugf(ctx, "'%s' is %s", path, format)

	a, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("unable to decode '%s' as %s: %w", path, format, err)
	}
	return a, nil
}

func Decode(
	r io.ReadSeeker,
	format Format,
) (*Audio, error) {
	switch format {
	case FormatWAV:
		return decodeWAV(r)
	case FormatOGG:
		return decodeOGG(r)
	case FormatMP3:
		return decodeMP3(r)
	case FormatFLAC:
		return decodeFLAC(r)
	}
	return nil, fmt.Errorf("format %s is not supported", format)
}

// downmix averages interleaved channels into a single one.
func downmix(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	n := len(interleaved) / channels
	mono := make([]float32, n)
	for i := 0; i < n; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}
