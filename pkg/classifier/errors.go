package classifier

import (
	"fmt"
)

type ErrLoadModel struct {
	Path string
	Err  error
}

func (e ErrLoadModel) Error() string {
	return fmt.Sprintf("unable to load the model '%s': %v", e.Path, e.Err)
}

func (e ErrLoadModel) Unwrap() error {
	return e.Err
}

type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("the model expects %d features, but %d are provided", e.Expected, e.Actual)
}

type ErrUnsupportedModelVersion struct {
	Version    string
	Constraint string
}

func (e ErrUnsupportedModelVersion) Error() string {
	return fmt.Sprintf("model format version '%s' does not satisfy '%s'", e.Version, e.Constraint)
}
