package voiceemotion

import (
	"fmt"
)

type ErrInitVAD struct {
	Err error
}

func (e ErrInitVAD) Error() string {
	return fmt.Sprintf("unable to initialize VAD: %v", e.Err)
}

func (e ErrInitVAD) Unwrap() error {
	return e.Err
}

type ErrInitFeatureExtractor struct {
	Err error
}

func (e ErrInitFeatureExtractor) Error() string {
	return fmt.Sprintf("unable to initialize the feature extractor: %v", e.Err)
}

func (e ErrInitFeatureExtractor) Unwrap() error {
	return e.Err
}
