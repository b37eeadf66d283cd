package audiofile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	FormatUndefined = Format(iota)
	FormatWAV
	FormatOGG
	FormatMP3
	FormatFLAC
)

func (f Format) String() string {
	switch f {
	case FormatUndefined:
		return "undefined"
	case FormatWAV:
		return "wav"
	case FormatOGG:
		return "ogg"
	case FormatMP3:
		return "mp3"
	case FormatFLAC:
		return "flac"
	}
	return fmt.Sprintf("unknown_%d", int(f))
}

// Extensions lists the file extensions offered to the user for selection.
func Extensions() []string {
	return []string{".wav", ".mp3", ".flac", ".ogg"}
}

// FormatFromPath guesses the format by the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV
	case ".ogg", ".oga":
		return FormatOGG
	case ".mp3":
		return FormatMP3
	case ".flac":
		return FormatFLAC
	}
	return FormatUndefined
}

// FormatFromHeader guesses the format by the magic bytes at the start
// of the file.
func FormatFromHeader(header []byte) Format {
	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return FormatWAV
	case bytes.HasPrefix(header, []byte("OggS")):
		return FormatOGG
	case bytes.HasPrefix(header, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(header, []byte("ID3")):
		return FormatMP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return FormatMP3
	}
	return FormatUndefined
}

type ErrUnsupportedFormat struct {
	Path string
}

func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unable to recognize the audio format of '%s'", e.Path)
}
