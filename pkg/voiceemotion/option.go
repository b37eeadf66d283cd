package voiceemotion

import (
	"time"

	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/emotionfusion/pkg/capture"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/butterworth"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
)

type config struct {
	Recorder         capture.Recorder
	Conditioner      Conditioner
	FeatureExtractor FeatureExtractor
	VAD              vad.VAD
	VADKind          vad.Kind
	SilenceThreshold float64
	HighPassCutoffHz float64
	HighPassOrder    int
	Duration         time.Duration
	SampleRate       audio.SampleRate
}

func defaultConfig() config {
	return config{
		VADKind:          vad.KindPeak,
		SilenceThreshold: vad.DefaultPeakThreshold,
		HighPassCutoffHz: butterworth.DefaultHighPassCutoffHz,
		HighPassOrder:    butterworth.DefaultHighPassOrder,
		Duration:         capture.DefaultDuration,
		SampleRate:       capture.DefaultSampleRate,
	}
}

type Option interface {
	apply(*config)
}

type Options []Option

func (opts Options) apply(cfg *config) {
	for _, opt := range opts {
		opt.apply(cfg)
	}
}

func (opts Options) config() config {
	cfg := defaultConfig()
	opts.apply(&cfg)
	return cfg
}

// OptionRecorder replaces the microphone.
type OptionRecorder struct{ capture.Recorder }

func (opt OptionRecorder) apply(cfg *config) {
	cfg.Recorder = opt.Recorder
}

// OptionConditioner replaces the live-audio high-pass conditioner.
type OptionConditioner struct{ Conditioner }

func (opt OptionConditioner) apply(cfg *config) {
	cfg.Conditioner = opt.Conditioner
}

// OptionFeatureExtractor replaces the MFCC extractor.
type OptionFeatureExtractor struct{ FeatureExtractor }

func (opt OptionFeatureExtractor) apply(cfg *config) {
	cfg.FeatureExtractor = opt.FeatureExtractor
}

// OptionVAD replaces the silence gate; it takes precedence over OptionVADKind.
type OptionVAD struct{ vad.VAD }

func (opt OptionVAD) apply(cfg *config) {
	cfg.VAD = opt.VAD
}

type OptionVADKind vad.Kind

func (opt OptionVADKind) apply(cfg *config) {
	cfg.VADKind = vad.Kind(opt)
}

// OptionSilenceThreshold is the peak amplitude below which a live clip
// is considered silent.
type OptionSilenceThreshold float64

func (opt OptionSilenceThreshold) apply(cfg *config) {
	cfg.SilenceThreshold = float64(opt)
}

type OptionHighPassCutoffHz float64

func (opt OptionHighPassCutoffHz) apply(cfg *config) {
	cfg.HighPassCutoffHz = float64(opt)
}

type OptionHighPassOrder int

func (opt OptionHighPassOrder) apply(cfg *config) {
	cfg.HighPassOrder = int(opt)
}

// OptionDuration is the default live capture duration.
type OptionDuration time.Duration

func (opt OptionDuration) apply(cfg *config) {
	cfg.Duration = time.Duration(opt)
}

// OptionSampleRate is the default live capture sample rate.
type OptionSampleRate audio.SampleRate

func (opt OptionSampleRate) apply(cfg *config) {
	cfg.SampleRate = audio.SampleRate(opt)
}
