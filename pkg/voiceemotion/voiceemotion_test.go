package voiceemotion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/emotionfusion/pkg/audiofile/audiofiletest"
	"github.com/xaionaro-go/emotionfusion/pkg/classifier"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/mfcc"
	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
)

type spyClassifier struct {
	numFeatures int
	proba       []float64
	calls       atomic.Int64
	lastInput   []float64
}

func (c *spyClassifier) NumFeatures() int  { return c.numFeatures }
func (c *spyClassifier) Classes() []string { return classifier.DefaultClasses }
func (c *spyClassifier) PredictProba(features []float64) ([]float64, error) {
	c.calls.Add(1)
	c.lastInput = features
	return c.proba, nil
}

type fakeRecorder struct {
	samples    []float32
	err        error
	duration   time.Duration
	sampleRate audio.SampleRate
}

func (r *fakeRecorder) Record(
	_ context.Context,
	duration time.Duration,
	sampleRate audio.SampleRate,
) ([]float32, error) {
	r.duration, r.sampleRate = duration, sampleRate
	return r.samples, r.err
}

type spyConditioner struct {
	calls int
}

func (c *spyConditioner) Condition(samples []float64, sampleRate float64) ([]float64, error) {
	c.calls++
	return HighPass{CutoffHz: 80, Order: 5}.Condition(samples, sampleRate)
}

type spyExtractor struct {
	numCoeffs int
	calls     int
}

func (e *spyExtractor) NumCoeffs() int { return e.numCoeffs }
func (e *spyExtractor) Extract([]float64, float64) (mfcc.Vector, error) {
	e.calls++
	return make(mfcc.Vector, e.numCoeffs), nil
}

func happyClassifier() *spyClassifier {
	return &spyClassifier{
		numFeatures: mfcc.DefaultNumCoeffs,
		proba:       []float64{0.1, 0.7, 0.1, 0.1},
	}
}

func constantClip(amplitude float32, n int) []float32 {
	samples := make([]float32, n)
	for idx := range samples {
		if idx%2 == 0 {
			samples[idx] = amplitude
		} else {
			samples[idx] = -amplitude
		}
	}
	return samples
}

func TestNewRejectsDimensionMismatch(t *testing.T) {
	_, err := New(context.Background(), &spyClassifier{numFeatures: 13})
	require.Error(t, err)
	var mismatch classifier.ErrDimensionMismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 13, mismatch.Expected)
	assert.Equal(t, mfcc.DefaultNumCoeffs, mismatch.Actual)
}

func TestAnalyzeFileMissingFile(t *testing.T) {
	cls := happyClassifier()
	p, err := New(context.Background(), cls, OptionRecorder{&fakeRecorder{}})
	require.NoError(t, err)
	defer p.Close()

	r := p.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.Equal(t, emotion.NeutralResult(0), r)
	assert.NotNil(t, r.Distribution)
	assert.Zero(t, cls.calls.Load())
}

type panickingExtractor struct{}

func (panickingExtractor) NumCoeffs() int { return mfcc.DefaultNumCoeffs }
func (panickingExtractor) Extract([]float64, float64) (mfcc.Vector, error) {
	panic("corrupted state")
}

func TestAnalyzeFileUndecodable(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"garbage.wav":    append([]byte("RIFF\x24\x00\x00\x00WAVE"), []byte("definitely not a fmt chunk")...),
		"truncated.flac": []byte("fLaC\x00\x00"),
		"noise.mp3":      []byte("not an mp3 stream at all"),
		"clip.txt":       []byte("hello"),
		"empty.ogg":      nil,
	}

	cls := happyClassifier()
	p, err := New(context.Background(), cls, OptionRecorder{&fakeRecorder{}})
	require.NoError(t, err)
	defer p.Close()

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, content, 0o644))

			r := p.AnalyzeFile(context.Background(), path)
			assert.Equal(t, emotion.NeutralResult(0), r)
		})
	}
	assert.Zero(t, cls.calls.Load())
}

func TestAnalyzeFileRecoversFromPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	audiofiletest.WriteWAV(t, path, audiofiletest.Tone(440, 0.3, 0.5, 16000), 16000, 1)

	cls := happyClassifier()
	p, err := New(context.Background(), cls,
		OptionRecorder{&fakeRecorder{}},
		OptionFeatureExtractor{panickingExtractor{}},
	)
	require.NoError(t, err)
	defer p.Close()

	var r emotion.ModalityResult
	require.NotPanics(t, func() {
		r = p.AnalyzeFile(context.Background(), path)
	})
	assert.Equal(t, emotion.NeutralResult(0), r)
	assert.Zero(t, cls.calls.Load())
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	audiofiletest.WriteWAV(t, path, audiofiletest.Tone(220, 0.005, 1, 22050), 22050, 1)

	cls := happyClassifier()
	conditioner := &spyConditioner{}
	p, err := New(context.Background(), cls,
		OptionRecorder{&fakeRecorder{}},
		OptionConditioner{conditioner},
	)
	require.NoError(t, err)
	defer p.Close()

	r := p.AnalyzeFile(context.Background(), path)
	assert.Equal(t, "happy", r.Label)
	assert.Equal(t, 0.7, r.Confidence)
	assert.Len(t, r.Distribution, 4)
	assert.EqualValues(t, 1, cls.calls.Load())
	assert.Len(t, cls.lastInput, mfcc.DefaultNumCoeffs)
	assert.Zero(t, conditioner.calls, "files are not filtered, and quiet files are not gated")
}

func TestAnalyzeRealtimeSilence(t *testing.T) {
	cls := happyClassifier()
	conditioner := &spyConditioner{}
	extractor := &spyExtractor{numCoeffs: mfcc.DefaultNumCoeffs}
	p, err := New(context.Background(), cls,
		OptionRecorder{&fakeRecorder{samples: constantClip(0.01, 32000)}},
		OptionConditioner{conditioner},
		OptionFeatureExtractor{extractor},
	)
	require.NoError(t, err)
	defer p.Close()

	r := p.AnalyzeRealtime(context.Background(), 0, 0)
	assert.Equal(t, emotion.NeutralResult(SilenceConfidence), r)
	assert.Zero(t, cls.calls.Load())
	assert.Zero(t, conditioner.calls)
	assert.Zero(t, extractor.calls)
}

func TestAnalyzeRealtime(t *testing.T) {
	cls := happyClassifier()
	conditioner := &spyConditioner{}
	recorder := &fakeRecorder{samples: constantClip(0.3, 8000)}
	p, err := New(context.Background(), cls,
		OptionRecorder{recorder},
		OptionConditioner{conditioner},
		OptionDuration(500*time.Millisecond),
	)
	require.NoError(t, err)
	defer p.Close()

	r := p.AnalyzeRealtime(context.Background(), 0, 0)
	assert.Equal(t, "happy", r.Label)
	assert.Equal(t, 0.7, r.Confidence)
	assert.Equal(t, 1, conditioner.calls)
	assert.EqualValues(t, 1, cls.calls.Load())
	assert.Equal(t, 500*time.Millisecond, recorder.duration)
	assert.Equal(t, audio.SampleRate(16000), recorder.sampleRate)

	p.AnalyzeRealtime(context.Background(), time.Second, 22050)
	assert.Equal(t, time.Second, recorder.duration)
	assert.Equal(t, audio.SampleRate(22050), recorder.sampleRate)
}

func TestAnalyzeRealtimeSilenceThresholdOption(t *testing.T) {
	cls := happyClassifier()
	p, err := New(context.Background(), cls,
		OptionRecorder{&fakeRecorder{samples: constantClip(0.3, 8000)}},
		OptionSilenceThreshold(0.5),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, emotion.NeutralResult(SilenceConfidence), p.AnalyzeRealtime(context.Background(), 0, 0))
}

func TestAnalyzeRealtimeDeviceFailure(t *testing.T) {
	cls := happyClassifier()
	p, err := New(context.Background(), cls,
		OptionRecorder{&fakeRecorder{err: errors.New("no such device")}},
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, emotion.NeutralResult(0), p.AnalyzeRealtime(context.Background(), 0, 0))
	assert.Zero(t, cls.calls.Load())
}
