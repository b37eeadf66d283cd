package mfcc

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// The defaults follow librosa.feature.mfcc. A classifier trained on
// librosa features only works with vectors computed with the very same
// parameters, so these are a compatibility contract rather than tunables.
const (
	DefaultNumCoeffs = 40
	DefaultNFFT      = 2048
	DefaultHopLength = 512
	DefaultNumMels   = 128
	DefaultTopDB     = 80.0
	DefaultAmin      = 1e-10
)

type Config struct {
	NumCoeffs int
	NFFT      int
	HopLength int
	NumMels   int
	FMin      float64
	// FMax of zero means the Nyquist frequency.
	FMax  float64
	TopDB float64
}

func DefaultConfig() Config {
	return Config{
		NumCoeffs: DefaultNumCoeffs,
		NFFT:      DefaultNFFT,
		HopLength: DefaultHopLength,
		NumMels:   DefaultNumMels,
		TopDB:     DefaultTopDB,
	}
}

func (cfg Config) Validate() error {
	var mErr *multierror.Error
	if cfg.NumCoeffs <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("the number of coefficients must be positive, got %d", cfg.NumCoeffs))
	}
	if cfg.NFFT <= 0 || cfg.NFFT%2 != 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("the FFT size must be positive and even, got %d", cfg.NFFT))
	}
	if cfg.HopLength <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("the hop length must be positive, got %d", cfg.HopLength))
	}
	if cfg.NumMels <= 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("the number of mel bands must be positive, got %d", cfg.NumMels))
	}
	if cfg.NumCoeffs > cfg.NumMels {
		mErr = multierror.Append(mErr, fmt.Errorf("cannot compute %d coefficients out of %d mel bands", cfg.NumCoeffs, cfg.NumMels))
	}
	if cfg.FMin < 0 || (cfg.FMax != 0 && cfg.FMax <= cfg.FMin) {
		mErr = multierror.Append(mErr, fmt.Errorf("invalid frequency range [%v, %v]", cfg.FMin, cfg.FMax))
	}
	if cfg.TopDB < 0 {
		mErr = multierror.Append(mErr, fmt.Errorf("top_db must be non-negative, got %v", cfg.TopDB))
	}
	return mErr.ErrorOrNil()
}
