// Package config loads the voicemood configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"github.com/xaionaro-go/audio/pkg/audio"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/mfcc"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
	"github.com/xaionaro-go/emotionfusion/pkg/voiceemotion"
)

type Voice struct {
	ModelPath        string   `toml:"model_path"`
	SampleRate       int      `toml:"sample_rate"`
	DurationSeconds  float64  `toml:"duration_seconds"`
	NMFCC            int      `toml:"n_mfcc"`
	SilenceThreshold float64  `toml:"silence_threshold"`
	SilenceGate      vad.Kind `toml:"silence_gate"`
	HighPassCutoffHz float64  `toml:"highpass_cutoff_hz"`
	HighPassOrder    int      `toml:"highpass_order"`
}

type STFT struct {
	NFFT      int `toml:"n_fft"`
	HopLength int `toml:"hop_length"`
	NMels     int `toml:"n_mels"`
}

type Face struct {
	// ReadingsPath is a file with line-delimited face analyzer output;
	// empty means stdin.
	ReadingsPath string `toml:"readings_path"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Voice Voice `toml:"voice"`
	STFT  STFT  `toml:"stft"`
	Face  Face  `toml:"face"`
	Log   Log   `toml:"log"`
}

func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/voicemood/config.toml")
}

// Load reads the configuration at path (or at DefaultConfigPath if path
// is empty) over the defaults. A missing file is not an error: the
// defaults are returned and exists is false.
func Load(path string) (_ Config, resolvedPath string, exists bool, _ error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return Config{}, "", false, err
	}

	if exists {
		b, err := os.ReadFile(resolvedPath)
		if err != nil {
			return Config{}, "", false, fmt.Errorf("unable to read the config '%s': %w", resolvedPath, err)
		}
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return Config{}, "", false, fmt.Errorf("unable to parse the config '%s': %w", resolvedPath, err)
		}
	}

	var baseDir string
	if exists {
		baseDir = filepath.Dir(resolvedPath)
	}
	if err := cfg.normalize(baseDir); err != nil {
		return Config{}, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, "", false, err
	}

	return cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	_, err = os.Stat(resolved)
	switch {
	case err == nil:
		return resolved, true, nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return resolved, false, nil
	default:
		return "", false, fmt.Errorf("unable to access the config '%s': %w", resolved, err)
	}
}

// normalize resolves a relative model path against baseDir (the directory
// of the config file), or against the working directory if baseDir is empty.
func (c *Config) normalize(baseDir string) error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if baseDir == "" || c.Voice.ModelPath == "" || strings.HasPrefix(c.Voice.ModelPath, "~") || filepath.IsAbs(c.Voice.ModelPath) {
		p, err := expandPath(c.Voice.ModelPath)
		if err != nil {
			return err
		}
		c.Voice.ModelPath = p
		return nil
	}
	c.Voice.ModelPath = filepath.Join(baseDir, c.Voice.ModelPath)
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to resolve the home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("unable to resolve the absolute path of '%s': %w", pathValue, err)
	}
	return absolute, nil
}

func (c Config) Duration() time.Duration {
	return time.Duration(c.Voice.DurationSeconds * float64(time.Second))
}

func (c Config) MFCC() mfcc.Config {
	cfg := mfcc.DefaultConfig()
	cfg.NumCoeffs = c.Voice.NMFCC
	cfg.NFFT = c.STFT.NFFT
	cfg.HopLength = c.STFT.HopLength
	cfg.NumMels = c.STFT.NMels
	return cfg
}

// VoiceOptions are the voice pipeline options described by the config,
// except for the feature extractor (see MFCC).
func (c Config) VoiceOptions() voiceemotion.Options {
	return voiceemotion.Options{
		voiceemotion.OptionVADKind(c.Voice.SilenceGate),
		voiceemotion.OptionSilenceThreshold(c.Voice.SilenceThreshold),
		voiceemotion.OptionHighPassCutoffHz(c.Voice.HighPassCutoffHz),
		voiceemotion.OptionHighPassOrder(c.Voice.HighPassOrder),
		voiceemotion.OptionDuration(c.Duration()),
		voiceemotion.OptionSampleRate(audio.SampleRate(c.Voice.SampleRate)),
	}
}

func (c Config) Validate() error {
	var mErr *multierror.Error
	if c.Voice.ModelPath == "" {
		mErr = multierror.Append(mErr, errors.New("voice.model_path must be set"))
	}
	if c.Voice.SampleRate <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("voice.sample_rate must be positive, got %d", c.Voice.SampleRate))
	}
	if c.Voice.DurationSeconds <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("voice.duration_seconds must be positive, got %v", c.Voice.DurationSeconds))
	}
	if c.Voice.SilenceThreshold < 0 || c.Voice.SilenceThreshold > 1 {
		mErr = multierror.Append(mErr, fmt.Errorf("voice.silence_threshold must be between 0 and 1, got %v", c.Voice.SilenceThreshold))
	}
	if c.Voice.SilenceGate == vad.KindUndefined {
		mErr = multierror.Append(mErr, errors.New("voice.silence_gate must be set"))
	}
	if c.Voice.SampleRate > 0 && !(c.Voice.HighPassCutoffHz > 0 && c.Voice.HighPassCutoffHz < float64(c.Voice.SampleRate)/2) {
		mErr = multierror.Append(mErr, fmt.Errorf("voice.highpass_cutoff_hz must be within (0, %d), got %v", c.Voice.SampleRate/2, c.Voice.HighPassCutoffHz))
	}
	if c.Voice.HighPassOrder <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("voice.highpass_order must be positive, got %d", c.Voice.HighPassOrder))
	}
	if err := c.MFCC().Validate(); err != nil {
		mErr = multierror.Append(mErr, fmt.Errorf("voice.n_mfcc/[stft]: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		mErr = multierror.Append(mErr, err)
	}
	return mErr.ErrorOrNil()
}
