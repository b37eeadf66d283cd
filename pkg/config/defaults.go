package config

import (
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/emotionfusion/pkg/capture"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/butterworth"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/mfcc"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
)

const DefaultModelPath = "voice_emotion_model.json"

func Default() Config {
	return Config{
		Voice: Voice{
			ModelPath:        DefaultModelPath,
			SampleRate:       int(capture.DefaultSampleRate),
			DurationSeconds:  capture.DefaultDuration.Seconds(),
			NMFCC:            mfcc.DefaultNumCoeffs,
			SilenceThreshold: vad.DefaultPeakThreshold,
			SilenceGate:      vad.KindPeak,
			HighPassCutoffHz: butterworth.DefaultHighPassCutoffHz,
			HighPassOrder:    butterworth.DefaultHighPassOrder,
		},
		STFT: STFT{
			NFFT:      mfcc.DefaultNFFT,
			HopLength: mfcc.DefaultHopLength,
			NMels:     mfcc.DefaultNumMels,
		},
		Log: Log{
			Level: logger.LevelWarning.String(),
		},
	}
}

func (c Config) LogLevel() (logger.Level, error) {
	var level logger.Level
	if err := level.Set(c.Log.Level); err != nil {
		return logger.LevelUndefined, err
	}
	return level, nil
}
