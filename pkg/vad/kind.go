package vad

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindUndefined = Kind(iota)
	KindPeak
	KindWebRTC
	endOfKind
)

// String just implements fmt.Stringer, flag.Value and pflag.Value.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindPeak:
		return "peak"
	case KindWebRTC:
		return "webrtc"
	}
	return fmt.Sprintf("unknown_%d", int(k))
}

// Set just implements flag.Value and pflag.Value.
func (k *Kind) Set(value string) error {
	v, err := ParseKind(value)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Type just implements pflag.Value.
func (k *Kind) Type() string {
	return "VADKind"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	return k.Set(string(b))
}

func ParseKind(in string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "peak":
		return KindPeak, nil
	case "webrtc", "libfvad":
		return KindWebRTC, nil
	}
	var allowedValues []string
	for k := KindUndefined + 1; k < endOfKind; k++ {
		allowedValues = append(allowedValues, k.String())
	}
	return KindUndefined, fmt.Errorf("unknown VAD kind '%s', known values are: %s",
		in, strings.Join(allowedValues, ", "))
}
