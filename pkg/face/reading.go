package face

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
)

// Reading is a single frame analysis in the analyzer's native shape:
//
//	{"dominant_emotion": "happy", "emotion": {"happy": 97.1, "sad": 0.4, ...}}
//
// Scores are taken as reported (the analyzer uses percentages).
type Reading struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Emotion         map[string]float64 `json:"emotion"`
}

// Result converts the reading into a face estimate. The confidence is the
// score of the dominant emotion, or 0 if the scores are missing.
func (r Reading) Result() emotion.ModalityResult {
	if r.DominantEmotion == "" {
		return emotion.ModalityResult{}
	}
	dist := make(emotion.Distribution, len(r.Emotion))
	for label, score := range r.Emotion {
		dist[label] = score
	}
	return emotion.ModalityResult{
		Label:        r.DominantEmotion,
		Confidence:   r.Emotion[r.DominantEmotion],
		Distribution: dist,
	}
}

// ParseReading decodes either a single reading or a list of readings (one
// per detected face, in which case the first face is used).
func ParseReading(b []byte) (Reading, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return Reading{}, fmt.Errorf("empty reading")
	}

	if b[0] == '[' {
		var readings []Reading
		if err := json.Unmarshal(b, &readings); err != nil {
			return Reading{}, fmt.Errorf("unable to decode the list of readings: %w", err)
		}
		if len(readings) == 0 {
			return Reading{}, fmt.Errorf("no faces in the reading")
		}
		return readings[0], nil
	}

	var reading Reading
	if err := json.Unmarshal(b, &reading); err != nil {
		return Reading{}, fmt.Errorf("unable to decode the reading: %w", err)
	}
	return reading, nil
}
