package model

import (
	"errors"
	"strings"
)

// OutputFormat is the container the remote service produces
type OutputFormat string

const (
	// FormatMP3 is compressed audio
	FormatMP3 OutputFormat = "mp3"

	// FormatWAV is lossless audio
	FormatWAV OutputFormat = "wav"

	// FormatMP4 is video
	FormatMP4 OutputFormat = "mp4"
)

// DefaultFormat is used when the user picked nothing
const DefaultFormat = FormatMP3

// ErrMixedRange is returned when a request combines a time range with full extraction
var ErrMixedRange = errors.New("request must set both start and end time, or extract_full, but not a mix")

// Formats returns all supported formats in display order
func Formats() []OutputFormat {
	return []OutputFormat{FormatMP3, FormatWAV, FormatMP4}
}

// IsValid reports whether f is one of the supported formats
func (f OutputFormat) IsValid() bool {
	return f == FormatMP3 || f == FormatWAV || f == FormatMP4
}

// IsAudio reports whether the format carries audio only
func (f OutputFormat) IsAudio() bool {
	return f == FormatMP3 || f == FormatWAV
}

// Label returns the human readable label used in selectors
func (f OutputFormat) Label() string {
	switch f {
	case FormatMP3:
		return "MP3 (Audio)"
	case FormatWAV:
		return "WAV (High Quality)"
	case FormatMP4:
		return "MP4 (Video)"
	default:
		return strings.ToUpper(string(f))
	}
}

// ParseFormat maps a format name or label back to OutputFormat
func ParseFormat(s string) (OutputFormat, bool) {
	s = strings.TrimSpace(s)
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) || s == f.Label() {
			return f, true
		}
	}
	return "", false
}

// ExtractionRequest is the body of a create-job call. It is built fresh for
// every submission and discarded after the call.
type ExtractionRequest struct {
	URL          string       `json:"url"`
	StartTime    *string      `json:"start_time"`
	EndTime      *string      `json:"end_time"`
	OutputFormat OutputFormat `json:"output_format"`
	Filename     string       `json:"filename,omitempty"`
	Topic        string       `json:"topic,omitempty"`
	Author       string       `json:"preacher,omitempty"`
	ExtractFull  bool         `json:"extract_full"`
}

// Check enforces the range invariant: either both start and end are set, or
// ExtractFull is set, never a mix.
func (r *ExtractionRequest) Check() error {
	hasStart := r.StartTime != nil
	hasEnd := r.EndTime != nil
	if r.ExtractFull {
		if hasStart || hasEnd {
			return ErrMixedRange
		}
		return nil
	}
	if !hasStart || !hasEnd {
		return ErrMixedRange
	}
	return nil
}
