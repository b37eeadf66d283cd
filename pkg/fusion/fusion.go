// Package fusion combines the face and the voice estimates into the single
// emotion to be displayed.
package fusion

import (
	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
)

// Result is the fused emotion with its presentation.
type Result struct {
	Emotion emotion.Emotion
	Style   emotion.Style
}

func newResult(e emotion.Emotion) Result {
	return Result{
		Emotion: e,
		Style:   e.Style(),
	}
}

// Fuse picks the final emotion out of the two modality estimates. An empty
// label means the modality has no estimate.
//
// Agreement wins regardless of confidence; on disagreement the voice wins
// unless its confidence is strictly lower than the face's.
func Fuse(
	faceLabel string,
	faceConf float64,
	voiceLabel string,
	voiceConf float64,
) emotion.Emotion {
	hasFace, hasVoice := faceLabel != "", voiceLabel != ""

	var f, v emotion.Emotion
	if hasFace {
		f = emotion.Normalize(faceLabel)
	}
	if hasVoice {
		v = emotion.Normalize(voiceLabel)
	}

	switch {
	case hasFace && hasVoice:
		if f == v {
			return f
		}
		if voiceConf >= faceConf {
			return v
		}
		return f
	case hasFace:
		return f
	case hasVoice:
		return v
	}
	return emotion.Default
}

// FuseResults is Fuse over two modality results, returning a fresh Result.
func FuseResults(face, voice emotion.ModalityResult) Result {
	return newResult(Fuse(face.Label, face.Confidence, voice.Label, voice.Confidence))
}
