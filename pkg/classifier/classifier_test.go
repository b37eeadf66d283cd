package classifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
)

type fixedClassifier struct {
	numFeatures int
	classes     []string
	proba       []float64
	err         error
	calls       int
}

func (c *fixedClassifier) NumFeatures() int  { return c.numFeatures }
func (c *fixedClassifier) Classes() []string { return c.classes }
func (c *fixedClassifier) PredictProba([]float64) ([]float64, error) {
	c.calls++
	return c.proba, c.err
}

func TestScore(t *testing.T) {
	c := &fixedClassifier{
		numFeatures: 3,
		classes:     DefaultClasses,
		proba:       []float64{0.1, 0.2, 0.6, 0.1},
	}
	r, err := Score(c, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "neutral", r.Label)
	assert.Equal(t, 0.6, r.Confidence)
	assert.Equal(t, emotion.Distribution{"angry": 0.1, "happy": 0.2, "neutral": 0.6, "sad": 0.1}, r.Distribution)
}

func TestScoreTieTakesFirstClass(t *testing.T) {
	c := &fixedClassifier{
		numFeatures: 1,
		classes:     DefaultClasses,
		proba:       []float64{0.1, 0.4, 0.1, 0.4},
	}
	r, err := Score(c, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, "happy", r.Label)
}

func TestScoreKeepsOutOfRangeProbabilities(t *testing.T) {
	c := &fixedClassifier{
		numFeatures: 1,
		classes:     DefaultClasses,
		proba:       []float64{0.7, 0.7, 0.2, 1.3},
	}
	r, err := Score(c, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, "sad", r.Label)
	assert.Equal(t, 1.3, r.Confidence)
}

func TestScoreFailures(t *testing.T) {
	c := &fixedClassifier{numFeatures: 40, classes: DefaultClasses, proba: []float64{1, 0, 0, 0}}
	_, err := Score(c, make([]float64, 13))
	var mismatch ErrDimensionMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 40, mismatch.Expected)
	assert.Equal(t, 13, mismatch.Actual)
	assert.Zero(t, c.calls)

	c = &fixedClassifier{numFeatures: 1, classes: DefaultClasses, proba: []float64{1}}
	_, err = Score(c, []float64{0})
	assert.Error(t, err)

	boom := errors.New("boom")
	c = &fixedClassifier{numFeatures: 1, classes: DefaultClasses, err: boom}
	_, err = Score(c, []float64{0})
	assert.ErrorIs(t, err, boom)
}

func TestValidateDimensions(t *testing.T) {
	c := &fixedClassifier{numFeatures: 40}
	require.NoError(t, ValidateDimensions(c, 40))
	assert.EqualError(t, ValidateDimensions(c, 20), "the model expects 40 features, but 20 are provided")
}

func TestModelHash(t *testing.T) {
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", HashModel(nil).String())
}
