package randomforest

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
)

const (
	KindRandomForest = "random_forest"

	SupportedFormatVersions = ">= 1.0, < 2.0"
)

// document is the on-disk representation of an exported forest.
type document struct {
	FormatVersion string    `json:"format_version"`
	Kind          string    `json:"kind"`
	NumFeatures   int       `json:"n_features"`
	Classes       []string  `json:"classes"`
	Trees         []treeDoc `json:"trees"`
}

// treeDoc mirrors the parallel arrays of a fitted decision tree; node i is
// a leaf iff ChildrenLeft[i] == -1.
type treeDoc struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

const leaf = -1

type node struct {
	Left      int
	Right     int
	Feature   int
	Threshold float64
	// Proba is only set for leaves and is already normalized.
	Proba []float64
}

type tree []node

func (doc *document) validate() error {
	var mErr *multierror.Error
	if doc.Kind != KindRandomForest {
		mErr = multierror.Append(mErr, fmt.Errorf("unexpected model kind '%s', expected '%s'", doc.Kind, KindRandomForest))
	}
	if doc.NumFeatures <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("n_features must be positive, got %d", doc.NumFeatures))
	}
	if len(doc.Classes) == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("no classes defined"))
	}
	sorted := slices.Clone(doc.Classes)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != len(doc.Classes) {
		mErr = multierror.Append(mErr, fmt.Errorf("classes are not unique: %v", doc.Classes))
	}
	if len(doc.Trees) == 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("no trees defined"))
	}
	return mErr.ErrorOrNil()
}

func (doc *treeDoc) compile(numFeatures, numClasses int) (tree, error) {
	n := len(doc.ChildrenLeft)
	if n == 0 {
		return nil, fmt.Errorf("the tree has no nodes")
	}
	if len(doc.ChildrenRight) != n || len(doc.Feature) != n || len(doc.Threshold) != n || len(doc.Value) != n {
		return nil, fmt.Errorf("inconsistent node array lengths: %d/%d/%d/%d/%d",
			n, len(doc.ChildrenRight), len(doc.Feature), len(doc.Threshold), len(doc.Value))
	}

	t := make(tree, n)
	for i := range t {
		left, right := doc.ChildrenLeft[i], doc.ChildrenRight[i]
		if left == leaf {
			if right != leaf {
				return nil, fmt.Errorf("node %d: a leaf must not have a right child", i)
			}
			proba, err := normalizeLeaf(doc.Value[i], numClasses)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			t[i] = node{Left: leaf, Right: leaf, Proba: proba}
			continue
		}

		// children always come after their parent, which also rules out cycles
		if left <= i || left >= n || right <= i || right >= n {
			return nil, fmt.Errorf("node %d: invalid children %d and %d", i, left, right)
		}
		feature := doc.Feature[i]
		if feature < 0 || feature >= numFeatures {
			return nil, fmt.Errorf("node %d: feature index %d is out of range [0, %d)", i, feature, numFeatures)
		}
		t[i] = node{
			Left:      left,
			Right:     right,
			Feature:   feature,
			Threshold: doc.Threshold[i],
		}
	}
	return t, nil
}

func normalizeLeaf(value []float64, numClasses int) ([]float64, error) {
	if len(value) != numClasses {
		return nil, fmt.Errorf("expected %d class weights, got %d", numClasses, len(value))
	}
	var sum float64
	for _, v := range value {
		sum += v
	}
	proba := make([]float64, numClasses)
	if sum == 0 {
		return proba, nil
	}
	for i, v := range value {
		proba[i] = v / sum
	}
	return proba, nil
}

// predict walks the tree. Features are compared in single precision, the
// same way the trainer evaluated its split thresholds.
func (t tree) predict(features []float64) []float64 {
	idx := 0
	for {
		n := &t[idx]
		if n.Left == leaf {
			return n.Proba
		}
		if float64(float32(features[n.Feature])) <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
}
