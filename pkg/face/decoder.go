package face

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
)

// MaxReadingSize limits the length of a single line of analyzer output.
const MaxReadingSize = 1 << 20

// Decoder reads line-delimited readings. A line that cannot be decoded is
// not an error: it yields an absent estimate, the same way the analyzer
// failing on a frame does.
type Decoder struct {
	scanner *bufio.Scanner
}

var _ Analyzer = (*Decoder)(nil)

func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxReadingSize)
	return &Decoder{scanner: scanner}
}

func (d *Decoder) Next(ctx context.Context) (emotion.ModalityResult, error) {
	if err := ctx.Err(); err != nil {
		return emotion.ModalityResult{}, err
	}
	for d.scanner.Scan() {
		line := d.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		reading, err := ParseReading(line)
		if err != nil {
			logger.Warnf(ctx, "unable to parse a face reading: %v", err)
			return emotion.ModalityResult{}, nil
		}
		return reading.Result(), nil
	}
	if err := d.scanner.Err(); err != nil {
		return emotion.ModalityResult{}, fmt.Errorf("unable to read the face readings: %w", err)
	}
	return emotion.ModalityResult{}, io.EOF
}
