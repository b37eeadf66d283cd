// Package classifier defines how the voice pipeline talks to a pretrained
// probabilistic model.
package classifier

import (
	"fmt"

	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
)

// Classifier is a loaded, immutable model. Implementations must be safe
// for concurrent use without locking: nothing mutates them after loading.
type Classifier interface {
	// NumFeatures is the input dimensionality the model was trained on.
	NumFeatures() int

	// Classes is the label vocabulary, in the order of PredictProba output.
	Classes() []string

	PredictProba(features []float64) ([]float64, error)
}

// DefaultClasses is the vocabulary of the voice emotion model.
var DefaultClasses = []string{"angry", "happy", "neutral", "sad"}

// ValidateDimensions is meant to be called once, right after loading, to
// make sure the feature extractor and the model agree.
func ValidateDimensions(c Classifier, numFeatures int) error {
	if c.NumFeatures() != numFeatures {
		return ErrDimensionMismatch{
			Expected: c.NumFeatures(),
			Actual:   numFeatures,
		}
	}
	return nil
}

// Score classifies the feature vector: the label is the most probable class
// (the first one on ties), the confidence is its probability. Probabilities
// are passed through as reported by the model.
func Score(
	c Classifier,
	features []float64,
) (emotion.ModalityResult, error) {
	if len(features) != c.NumFeatures() {
		return emotion.ModalityResult{}, ErrDimensionMismatch{
			Expected: c.NumFeatures(),
			Actual:   len(features),
		}
	}

	proba, err := c.PredictProba(features)
	if err != nil {
		return emotion.ModalityResult{}, fmt.Errorf("unable to predict: %w", err)
	}
	classes := c.Classes()
	if len(proba) != len(classes) || len(proba) == 0 {
		return emotion.ModalityResult{}, fmt.Errorf("the model returned %d probabilities for %d classes", len(proba), len(classes))
	}

	bestIdx := 0
	for idx, p := range proba {
		if p > proba[bestIdx] {
			bestIdx = idx
		}
	}

	dist := make(emotion.Distribution, len(classes))
	for idx, label := range classes {
		dist[label] = proba[idx]
	}

	return emotion.ModalityResult{
		Label:        classes[bestIdx],
		Confidence:   proba[bestIdx],
		Distribution: dist,
	}, nil
}
