// Package face consumes the output of an external face emotion analyzer.
// Detection and the model itself live outside of this module.
package face

import (
	"context"

	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
)

// Analyzer produces one face estimate per analyzed video frame. An
// estimate with an empty Label means no face emotion is known for the
// frame. Next returns io.EOF once the source is exhausted.
type Analyzer interface {
	Next(ctx context.Context) (emotion.ModalityResult, error)
}
