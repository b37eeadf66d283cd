package emotion

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type Modality int

const (
	ModalityUndefined = Modality(iota)
	ModalityFace
	ModalityVoice
)

func (m Modality) String() string {
	switch m {
	case ModalityUndefined:
		return "undefined"
	case ModalityFace:
		return "face"
	case ModalityVoice:
		return "voice"
	}
	return fmt.Sprintf("unknown_%d", int(m))
}

// Distribution is a per-class probability mapping as reported by a
// classifier. It is not required to sum to 1.
type Distribution map[string]float64

// ArgMax returns the label with the highest probability. Ties resolve to
// the lexicographically smallest label so the result does not depend on
// map iteration order.
func (d Distribution) ArgMax() (string, float64, bool) {
	if len(d) == 0 {
		return "", 0, false
	}
	var (
		bestLabel string
		bestProb  float64
	)
	for idx, label := range slices.Sorted(maps.Keys(d)) {
		p := d[label]
		if idx == 0 || p > bestProb {
			bestLabel, bestProb = label, p
		}
	}
	return bestLabel, bestProb, true
}

func (d Distribution) String() string {
	var parts []string
	for _, label := range slices.Sorted(maps.Keys(d)) {
		parts = append(parts, fmt.Sprintf("%s:%.3f", label, d[label]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// ModalityResult is what a single analysis call of a modality produces.
// Label is raw (not normalized); an empty Label means the modality has
// no estimate.
type ModalityResult struct {
	Label        string
	Confidence   float64
	Distribution Distribution
}

// NeutralResult is the degraded result returned instead of an error.
func NeutralResult(confidence float64) ModalityResult {
	return ModalityResult{
		Label:        Default.String(),
		Confidence:   confidence,
		Distribution: Distribution{},
	}
}

// IsPresent reports whether the result carries any label at all.
func (r ModalityResult) IsPresent() bool {
	return r.Label != ""
}

// Emotion normalizes the raw label.
func (r ModalityResult) Emotion() Emotion {
	return Normalize(r.Label)
}
