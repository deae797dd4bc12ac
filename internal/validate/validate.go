package validate

import (
	"fmt"
	"strings"

	"github.com/ytget/yt-snippet/internal/model"
)

// User-facing validation messages
const (
	MsgInvalidURL      = "Please enter a valid YouTube URL."
	MsgFullTooLong     = "Full extraction is limited to videos under 4 hours."
	MsgStartRequired   = "Start time is required."
	MsgEndRequired     = "End time is required."
	MsgEndBeforeStart  = "End time must be after start time."
	MsgSnippetTooLong  = "Snippet cannot exceed 4 hours."
	msgEndPastDuration = "End time exceeds video duration (%s)"
)

// DefaultStartTime pre-fills the start field
const DefaultStartTime = "0:00"

// Error is a validation failure carrying the single message shown to the user
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(msg string) error {
	return &Error{Message: msg}
}

// Form holds raw form fields as typed by the user
type Form struct {
	URL         string
	StartTime   string
	EndTime     string
	ExtractFull bool
	Format      model.OutputFormat
	Filename    string
	Topic       string
	Author      string
}

// NewForm returns a form with the default start time and format
func NewForm() Form {
	return Form{StartTime: DefaultStartTime, Format: model.DefaultFormat}
}

// Validate checks the form against the accepted URL shapes and span limits.
// info is the possibly stale metadata for the URL, or nil if it was never
// resolved. It returns nil when the form is valid, otherwise an *Error.
func Validate(f Form, info *model.VideoInfo) error {
	if !IsSupportedURL(f.URL) {
		return fail(MsgInvalidURL)
	}

	if f.ExtractFull {
		if info != nil && info.Duration > MaxSpanSeconds {
			return fail(MsgFullTooLong)
		}
		return nil
	}

	if f.StartTime == "" {
		return fail(MsgStartRequired)
	}
	if f.EndTime == "" {
		return fail(MsgEndRequired)
	}

	start := ParseTimestamp(f.StartTime)
	end := ParseTimestamp(f.EndTime)

	if end <= start {
		return fail(MsgEndBeforeStart)
	}
	if end-start > MaxSpanSeconds {
		return fail(MsgSnippetTooLong)
	}
	if info != nil && float64(end) > info.Duration {
		return fail(fmt.Sprintf(msgEndPastDuration, model.FormatDuration(info.Duration)))
	}
	return nil
}

// SnippetSpan returns the selected span in seconds for live display. ok is
// false when the range is incomplete or not increasing. In full mode the
// resolved duration is returned if known.
func SnippetSpan(f Form, info *model.VideoInfo) (seconds float64, ok bool) {
	if f.ExtractFull {
		if info == nil {
			return 0, false
		}
		return info.Duration, true
	}
	if f.StartTime == "" || f.EndTime == "" {
		return 0, false
	}
	start := ParseTimestamp(f.StartTime)
	end := ParseTimestamp(f.EndTime)
	if end <= start {
		return 0, false
	}
	return float64(end - start), true
}

// Request builds the extraction request for a validated form
func (f Form) Request() model.ExtractionRequest {
	format := f.Format
	if !format.IsValid() {
		format = model.DefaultFormat
	}

	req := model.ExtractionRequest{
		URL:          strings.TrimSpace(f.URL),
		OutputFormat: format,
		Filename:     strings.TrimSpace(f.Filename),
		Topic:        strings.TrimSpace(f.Topic),
		Author:       strings.TrimSpace(f.Author),
		ExtractFull:  f.ExtractFull,
	}
	if !f.ExtractFull {
		start, end := f.StartTime, f.EndTime
		req.StartTime = &start
		req.EndTime = &end
	}
	return req
}
