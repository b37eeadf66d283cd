package emotion

import (
	"fmt"
	"strings"
)

type Emotion int

const (
	EmotionUndefined = Emotion(iota)
	EmotionHappy
	EmotionSad
	EmotionAngry
	EmotionFear
	EmotionSurprise
	EmotionNeutral
	EmotionDisgust
	endOfEmotion
)

// Default is the emotion assumed whenever nothing better is known.
const Default = EmotionNeutral

// All returns the closed set of canonical emotions.
func All() []Emotion {
	result := make([]Emotion, 0, endOfEmotion-1)
	for e := EmotionUndefined + 1; e < endOfEmotion; e++ {
		result = append(result, e)
	}
	return result
}

// String just implements fmt.Stringer, flag.Value and pflag.Value.
func (e Emotion) String() string {
	switch e {
	case EmotionUndefined:
		return "undefined"
	case EmotionHappy:
		return "happy"
	case EmotionSad:
		return "sad"
	case EmotionAngry:
		return "angry"
	case EmotionFear:
		return "fear"
	case EmotionSurprise:
		return "surprise"
	case EmotionNeutral:
		return "neutral"
	case EmotionDisgust:
		return "disgust"
	}
	return fmt.Sprintf("unknown_%d", int(e))
}

// Set parses an exact canonical name.
// This method just implements flag.Value and pflag.Value.
func (e *Emotion) Set(value string) error {
	v, err := Parse(value)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Type just implements pflag.Value.
func (e *Emotion) Type() string {
	return "Emotion"
}

// IsCanonical reports whether e is one of the seven displayable emotions.
func (e Emotion) IsCanonical() bool {
	return e > EmotionUndefined && e < endOfEmotion
}

// Parse accepts only exact canonical names (case-insensitive). Use
// Normalize for untrusted free-form labels.
func Parse(in string) (Emotion, error) {
	name := strings.ToLower(strings.TrimSpace(in))
	for _, e := range All() {
		if e.String() == name {
			return e, nil
		}
	}
	var allowedValues []string
	for _, e := range All() {
		allowedValues = append(allowedValues, e.String())
	}
	return EmotionUndefined, fmt.Errorf("unknown emotion '%s', known values are: %s",
		in, strings.Join(allowedValues, ", "))
}
