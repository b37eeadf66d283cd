// Package voiceemotion estimates the emotion of speech, either from an
// audio file or from a short live microphone capture.
package voiceemotion

import (
	"context"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/emotionfusion/pkg/audiofile"
	"github.com/xaionaro-go/emotionfusion/pkg/capture"
	"github.com/xaionaro-go/emotionfusion/pkg/classifier"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/mfcc"
	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
	"github.com/xaionaro-go/xsync"
)

// SilenceConfidence is the confidence reported for a live clip that was
// rejected by the silence gate.
const SilenceConfidence = 0.1

// Pipeline never returns an error from an analysis: any failure degrades
// to a neutral result with zero confidence.
type Pipeline struct {
	Classifier       classifier.Classifier
	FeatureExtractor FeatureExtractor
	Conditioner      Conditioner
	Recorder         capture.Recorder
	VAD              vad.VAD

	// RealtimeLocker serializes live captures: the device and a stateful
	// VAD cannot serve two of them at once.
	RealtimeLocker xsync.Mutex

	Duration   time.Duration
	SampleRate audio.SampleRate
}

func New(
	ctx context.Context,
	cls classifier.Classifier,
	opts ...Option,
) (_ret *Pipeline, _err error) {
	logger.Debugf(ctx, "New(ctx, %T, %#+v)", cls, opts)
	defer func() { logger.Debugf(ctx, "/New(ctx, %T, %#+v): %v", cls, opts, _err) }()

	if cls == nil {
		return nil, fmt.Errorf("no classifier provided")
	}
	cfg := Options(opts).config()

	extractor := cfg.FeatureExtractor
	if extractor == nil {
		e, err := mfcc.New(mfcc.DefaultConfig())
		if err != nil {
			return nil, ErrInitFeatureExtractor{Err: err}
		}
		extractor = e
	}

	if err := classifier.ValidateDimensions(cls, extractor.NumCoeffs()); err != nil {
		return nil, err
	}

	conditioner := cfg.Conditioner
	if conditioner == nil {
		conditioner = HighPass{
			CutoffHz: cfg.HighPassCutoffHz,
			Order:    cfg.HighPassOrder,
		}
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = capture.NewMicrophone()
	}

	gate := cfg.VAD
	if gate == nil {
		switch cfg.VADKind {
		case vad.KindPeak, vad.KindUndefined:
			gate = vad.NewPeak(cfg.SilenceThreshold)
		case vad.KindWebRTC:
			v, err := newWebRTCVAD(ctx, cfg.SampleRate)
			if err != nil {
				return nil, ErrInitVAD{Err: err}
			}
			gate = v
		default:
			return nil, ErrInitVAD{Err: fmt.Errorf("unknown VAD kind: %s", cfg.VADKind)}
		}
	}
	logger.Debugf(ctx, "silence gate: %T", gate)

	return &Pipeline{
		Classifier:       cls,
		FeatureExtractor: extractor,
		Conditioner:      conditioner,
		Recorder:         recorder,
		VAD:              gate,
		Duration:         cfg.Duration,
		SampleRate:       cfg.SampleRate,
	}, nil
}

func (p *Pipeline) Close() error {
	var result *multierror.Error
	if p.VAD != nil {
		if err := p.VAD.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("unable to close the VAD: %w", err))
		}
	}
	return result.ErrorOrNil()
}

// AnalyzeFile classifies the whole content of an audio file. The audio is
// used as decoded: no silence gating and no filtering.
func (p *Pipeline) AnalyzeFile(
	ctx context.Context,
	path string,
) (_ret emotion.ModalityResult) {
	logger.Debugf(ctx, "AnalyzeFile(ctx, '%s')", path)
	defer func() { logger.Debugf(ctx, "/AnalyzeFile(ctx, '%s'): %s %.3f", path, _ret.Label, _ret.Confidence) }()

	// some decoders panic on malformed input instead of returning an error
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "got panic while analyzing '%s': %v", path, r)
			_ret = emotion.NeutralResult(0)
		}
	}()

	result, err := p.analyzeFile(ctx, path)
	if err != nil {
		logger.Warnf(ctx, "unable to analyze '%s': %v", path, err)
		return emotion.NeutralResult(0)
	}
	return result
}

func (p *Pipeline) analyzeFile(
	ctx context.Context,
	path string,
) (emotion.ModalityResult, error) {
	a, err := audiofile.Load(ctx, path)
	if err != nil {
		return emotion.ModalityResult{}, err
	}
	logger.Debugf(ctx, "'%s': %d samples at %d Hz (%v)", path, len(a.Samples), a.SampleRate, a.Duration())
	return p.classify(a.Float64(), float64(a.SampleRate))
}

// AnalyzeRealtime captures a live clip and classifies it. Zero duration
// or sample rate mean the pipeline defaults. A clip the silence gate
// rejects yields neutral with SilenceConfidence, without being classified.
func (p *Pipeline) AnalyzeRealtime(
	ctx context.Context,
	duration time.Duration,
	sampleRate audio.SampleRate,
) (_ret emotion.ModalityResult) {
	if duration <= 0 {
		duration = p.Duration
	}
	if sampleRate == 0 {
		sampleRate = p.SampleRate
	}
	logger.Debugf(ctx, "AnalyzeRealtime(ctx, %v, %d)", duration, sampleRate)
	defer func() {
		logger.Debugf(ctx, "/AnalyzeRealtime(ctx, %v, %d): %s %.3f", duration, sampleRate, _ret.Label, _ret.Confidence)
	}()

	return xsync.DoR1(ctx, &p.RealtimeLocker, func() emotion.ModalityResult {
		samples, err := p.Recorder.Record(ctx, duration, sampleRate)
		if err != nil {
			logger.Warnf(ctx, "unable to capture audio: %v", err)
			return emotion.NeutralResult(0)
		}

		silent, err := p.VAD.IsSilent(ctx, samples, sampleRate)
		if err != nil {
			logger.Warnf(ctx, "unable to check the clip for silence: %v", err)
			return emotion.NeutralResult(0)
		}
		if silent {
			logger.Debugf(ctx, "the clip is silent")
			return emotion.NeutralResult(SilenceConfidence)
		}

		signal := make([]float64, len(samples))
		for idx, s := range samples {
			signal[idx] = float64(s)
		}
		signal, err = p.Conditioner.Condition(signal, float64(sampleRate))
		if err != nil {
			logger.Warnf(ctx, "unable to condition the clip: %v", err)
			return emotion.NeutralResult(0)
		}

		result, err := p.classify(signal, float64(sampleRate))
		if err != nil {
			logger.Warnf(ctx, "unable to classify the clip: %v", err)
			return emotion.NeutralResult(0)
		}
		return result
	})
}

func (p *Pipeline) classify(
	samples []float64,
	sampleRate float64,
) (emotion.ModalityResult, error) {
	features, err := p.FeatureExtractor.Extract(samples, sampleRate)
	if err != nil {
		return emotion.ModalityResult{}, fmt.Errorf("unable to extract features: %w", err)
	}
	result, err := classifier.Score(p.Classifier, features)
	if err != nil {
		return emotion.ModalityResult{}, fmt.Errorf("unable to score the features: %w", err)
	}
	return result, nil
}
