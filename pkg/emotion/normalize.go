package emotion

import "strings"

type rule struct {
	Needles []string
	Emotion Emotion
}

// rules are evaluated top to bottom; the first matching rule wins.
var rules = []rule{
	{Needles: []string{"happy", "joy"}, Emotion: EmotionHappy},
	{Needles: []string{"sad"}, Emotion: EmotionSad},
	{Needles: []string{"angry", "mad"}, Emotion: EmotionAngry},
	{Needles: []string{"fear", "scared"}, Emotion: EmotionFear},
	{Needles: []string{"surprise", "surprised"}, Emotion: EmotionSurprise},
	{Needles: []string{"disgust"}, Emotion: EmotionDisgust},
	{Needles: []string{"neutral", "calm"}, Emotion: EmotionNeutral},
}

// Normalize maps an arbitrary label produced by any modality onto the
// canonical taxonomy. It never fails: empty or unrecognized labels
// resolve to Default.
func Normalize(raw string) Emotion {
	if raw == "" {
		return Default
	}

	n := strings.ToLower(raw)
	for _, r := range rules {
		for _, needle := range r.Needles {
			if strings.Contains(n, needle) {
				return r.Emotion
			}
		}
	}
	return Default
}
