package randomforest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/emotionfusion/pkg/classifier"
)

const twoTreeForest = `{
  "format_version": "1.0",
  "kind": "random_forest",
  "n_features": 2,
  "classes": ["angry", "happy", "neutral", "sad"],
  "trees": [
    {
      "children_left":  [1, -1, -1],
      "children_right": [2, -1, -1],
      "feature":        [0, -2, -2],
      "threshold":      [0.5, -2, -2],
      "value":          [[3, 2, 0, 1], [3, 0, 0, 1], [0, 2, 0, 0]]
    },
    {
      "children_left":  [-1],
      "children_right": [-1],
      "feature":        [-2],
      "threshold":      [-2],
      "value":          [[0, 0, 0.5, 0.5]]
    }
  ]
}`

func parse(t *testing.T, doc string) *Forest {
	f, err := Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	return f
}

func TestPredictProba(t *testing.T) {
	f := parse(t, twoTreeForest)
	assert.Equal(t, 2, f.NumFeatures())
	assert.Equal(t, 2, f.NumTrees())
	assert.Equal(t, classifier.DefaultClasses, f.Classes())

	proba, err := f.PredictProba([]float64{0.2, 9})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.375, 0, 0.25, 0.375}, proba, 1e-12)

	proba, err = f.PredictProba([]float64{0.9, -9})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 0.25, 0.25}, proba, 1e-12)

	r, err := classifier.Score(f, []float64{0.9, 0})
	require.NoError(t, err)
	assert.Equal(t, "happy", r.Label)
	assert.InDelta(t, 0.5, r.Confidence, 1e-12)
	assert.Len(t, r.Distribution, 4)

	_, err = f.PredictProba([]float64{1})
	assert.ErrorAs(t, err, &classifier.ErrDimensionMismatch{})
}

func TestSplitComparesInSinglePrecision(t *testing.T) {
	doc := strings.Replace(twoTreeForest, `"threshold":      [0.5, -2, -2]`, `"threshold":      [0.10000000149011612, -2, -2]`, 1)
	f := parse(t, doc)

	// float32(0.1) is slightly above 0.1 and equals the threshold
	proba, err := f.PredictProba([]float64{0.1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.375, proba[0], 1e-12)
}

func TestForestIsSafeForConcurrentUse(t *testing.T) {
	f := parse(t, twoTreeForest)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			x := float64(i%2) * 0.9
			proba, err := f.PredictProba([]float64{x, 0})
			assert.NoError(t, err)
			assert.Len(t, proba, 4)
		}(i)
	}
	wg.Wait()

	classes := f.Classes()
	classes[0] = "mutated"
	assert.Equal(t, "angry", f.Classes()[0])
}

func TestParseRejectsBrokenModels(t *testing.T) {
	for name, doc := range map[string]string{
		"not_json":        `{`,
		"future_version":  strings.Replace(twoTreeForest, `"1.0"`, `"2.1"`, 1),
		"bad_version":     strings.Replace(twoTreeForest, `"1.0"`, `"latest"`, 1),
		"wrong_kind":      strings.Replace(twoTreeForest, `"random_forest"`, `"svm"`, 1),
		"no_features":     strings.Replace(twoTreeForest, `"n_features": 2`, `"n_features": 0`, 1),
		"dup_classes":     strings.Replace(twoTreeForest, `"happy", "neutral"`, `"happy", "happy"`, 1),
		"feature_range":   strings.Replace(twoTreeForest, `[0, -2, -2]`, `[7, -2, -2]`, 1),
		"backward_child":  strings.Replace(twoTreeForest, `[1, -1, -1]`, `[0, -1, -1]`, 1),
		"short_value":     strings.Replace(twoTreeForest, `[3, 0, 0, 1]`, `[3, 0]`, 1),
		"ragged_arrays":   strings.Replace(twoTreeForest, `[2, -1, -1]`, `[2, -1]`, 1),
		"leaf_with_right": strings.Replace(twoTreeForest, `"children_right": [-1]`, `"children_right": [0]`, 1),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse(context.Background(), []byte(strings.Replace(twoTreeForest, `"1.0"`, `"2.1"`, 1)))
	assert.ErrorAs(t, err, &classifier.ErrUnsupportedModelVersion{})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "voice_emotion_model.json")
	require.NoError(t, os.WriteFile(path, []byte(twoTreeForest), 0o644))

	f, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, classifier.HashModel([]byte(twoTreeForest)), f.ModelHash())

	_, err = Load(ctx, filepath.Join(dir, "missing.json"))
	var loadErr classifier.ErrLoadModel
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, filepath.Join(dir, "missing.json"), loadErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
