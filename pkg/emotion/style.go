package emotion

import (
	"fmt"
)

type Style struct {
	Emoji string
	Color string
	Name  string
}

var styles = map[Emotion]Style{
	EmotionHappy:    {Emoji: "😀", Color: "#FFD54F", Name: "행복"},
	EmotionSad:      {Emoji: "😢", Color: "#64B5F6", Name: "슬픔"},
	EmotionAngry:    {Emoji: "😡", Color: "#E57373", Name: "분노"},
	EmotionFear:     {Emoji: "😨", Color: "#9575CD", Name: "두려움"},
	EmotionSurprise: {Emoji: "😮", Color: "#FFB74D", Name: "놀람"},
	EmotionNeutral:  {Emoji: "😐", Color: "#B0BEC5", Name: "중립"},
	EmotionDisgust:  {Emoji: "🤢", Color: "#81C784", Name: "역겨움"},
}

// Style returns the presentation of the emotion. Anything outside of
// the canonical set gets the presentation of Default.
func (e Emotion) Style() Style {
	if s, ok := styles[e]; ok {
		return s
	}
	return styles[Default]
}

// StyleOf normalizes a raw label and returns it together with its style.
func StyleOf(raw string) (Emotion, Style) {
	e := Normalize(raw)
	return e, e.Style()
}

// Banner is the final-result line: "<emoji> <name>".
func (s Style) Banner() string {
	return fmt.Sprintf("%s %s", s.Emoji, s.Name)
}

// Describe is a per-modality line: "<name> <emoji> (confidence: 0.00)".
func (s Style) Describe(confidence float64) string {
	return fmt.Sprintf("%s %s (confidence: %.2f)", s.Name, s.Emoji, confidence)
}
