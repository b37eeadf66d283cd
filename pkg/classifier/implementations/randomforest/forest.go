// Package randomforest evaluates a random forest exported from a trained
// ensemble of decision trees.
package randomforest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-version"
	"github.com/xaionaro-go/emotionfusion/pkg/classifier"
)

// Forest is immutable after loading and may be shared between goroutines.
type Forest struct {
	numFeatures int
	classes     []string
	trees       []tree
	modelHash   classifier.ModelHash
}

var _ classifier.Classifier = (*Forest)(nil)

func Load(
	ctx context.Context,
	path string,
) (*Forest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, classifier.ErrLoadModel{Path: path, Err: err}
	}
	f, err := Parse(ctx, b)
	if err != nil {
		return nil, classifier.ErrLoadModel{Path: path, Err: err}
	}
	logger.Infof(ctx, "loaded the model '%s': %d trees, %d features, classes %v", path, len(f.trees), f.numFeatures, f.classes)
	return f, nil
}

func Parse(
	ctx context.Context,
	b []byte,
) (*Forest, error) {
	h := classifier.HashModel(b)
	logger.Debugf(ctx, "model SHA1: %s", h)

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse the model: %w", err)
	}

	if err := checkFormatVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	trees := make([]tree, 0, len(doc.Trees))
	for idx := range doc.Trees {
		t, err := doc.Trees[idx].compile(doc.NumFeatures, len(doc.Classes))
		if err != nil {
			return nil, fmt.Errorf("invalid tree #%d: %w", idx, err)
		}
		trees = append(trees, t)
	}

	return &Forest{
		numFeatures: doc.NumFeatures,
		classes:     slices.Clone(doc.Classes),
		trees:       trees,
		modelHash:   h,
	}, nil
}

func checkFormatVersion(s string) error {
	constraint, err := version.NewConstraint(SupportedFormatVersions)
	if err != nil {
		panic(err)
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return fmt.Errorf("unable to parse the format version '%s': %w", s, err)
	}
	if !constraint.Check(v) {
		return classifier.ErrUnsupportedModelVersion{
			Version:    s,
			Constraint: SupportedFormatVersions,
		}
	}
	return nil
}

func (f *Forest) NumFeatures() int {
	return f.numFeatures
}

func (f *Forest) Classes() []string {
	return slices.Clone(f.classes)
}

func (f *Forest) NumTrees() int {
	return len(f.trees)
}

func (f *Forest) ModelHash() classifier.ModelHash {
	return f.modelHash
}

// PredictProba averages the class probabilities of all the trees.
func (f *Forest) PredictProba(features []float64) ([]float64, error) {
	if len(features) != f.numFeatures {
		return nil, classifier.ErrDimensionMismatch{
			Expected: f.numFeatures,
			Actual:   len(features),
		}
	}

	proba := make([]float64, len(f.classes))
	for _, t := range f.trees {
		for i, p := range t.predict(features) {
			proba[i] += p
		}
	}
	for i := range proba {
		proba[i] /= float64(len(f.trees))
	}
	return proba, nil
}
