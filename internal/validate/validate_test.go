package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/ytget/yt-snippet/internal/model"
)

const testURL = "https://youtu.be/dQw4w9WgXcQ"

func snippet(start, end string) Form {
	f := NewForm()
	f.URL = testURL
	f.StartTime = start
	f.EndTime = end
	return f
}

func TestValidate(t *testing.T) {
	short := &model.VideoInfo{Title: "Clip", Duration: 100}
	long := &model.VideoInfo{Title: "Marathon", Duration: 20000}

	full := NewForm()
	full.URL = testURL
	full.ExtractFull = true

	badURL := snippet("0:00", "0:10")
	badURL.URL = "https://example.com/video"

	tests := []struct {
		name    string
		form    Form
		info    *model.VideoInfo
		wantMsg string
	}{
		{"snippet 1:30 to 2:00 accepted", snippet("1:30", "2:00"), nil, ""},
		{"end before start rejected", snippet("2:00", "1:30"), nil, MsgEndBeforeStart},
		{"equal bounds rejected", snippet("1:00", "60"), nil, MsgEndBeforeStart},
		{"invalid url", badURL, nil, MsgInvalidURL},
		{"missing start", snippet("", "1:00"), nil, MsgStartRequired},
		{"missing end", snippet("0:00", ""), nil, MsgEndRequired},
		{"span over four hours", snippet("0", "4:00:01"), nil, MsgSnippetTooLong},
		{"span of exactly four hours", snippet("0", "4:00:00"), nil, ""},
		{"huge end does not wrap", snippet("0", "9223372036854775807:0"), nil, MsgSnippetTooLong},
		{"huge end with wrapped hours", snippet("0", "9223372036854775807:00:00"), nil, MsgSnippetTooLong},
		{"end past known duration", snippet("0:00", "2:00"), short, "End time exceeds video duration (1m 40s)"},
		{"end at known duration", snippet("0:00", "1:40"), short, ""},
		{"full extraction unresolved", full, nil, ""},
		{"full extraction over cap", full, long, MsgFullTooLong},
		{"full extraction under cap", full, short, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form, tt.info)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected valid, got %q", err)
				}
				return
			}
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, verr.Message)
			}
		})
	}
}

func TestValidate_EndBeforeStartMessage(t *testing.T) {
	err := Validate(snippet("2:00", "1:30"), nil)
	if err == nil || !strings.HasPrefix(strings.ToLower(err.Error()), "end time must be after start") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSnippetSpan(t *testing.T) {
	if span, ok := SnippetSpan(snippet("1:30", "2:00"), nil); !ok || span != 30 {
		t.Errorf("expected 30s span, got %v (ok=%v)", span, ok)
	}
	if _, ok := SnippetSpan(snippet("2:00", "1:30"), nil); ok {
		t.Error("decreasing range should have no span")
	}

	full := NewForm()
	full.ExtractFull = true
	if _, ok := SnippetSpan(full, nil); ok {
		t.Error("full mode without metadata should have no span")
	}
	if span, ok := SnippetSpan(full, &model.VideoInfo{Duration: 321}); !ok || span != 321 {
		t.Errorf("expected full duration, got %v", span)
	}
}

func TestForm_Request(t *testing.T) {
	f := snippet("1:30", "2:00")
	f.Format = model.FormatWAV
	f.Filename = "  my-clip "
	f.Author = "John Doe"

	req := f.Request()
	if err := req.Check(); err != nil {
		t.Fatalf("snippet request violates range invariant: %v", err)
	}
	if *req.StartTime != "1:30" || *req.EndTime != "2:00" {
		t.Errorf("unexpected range %s-%s", *req.StartTime, *req.EndTime)
	}
	if req.Filename != "my-clip" || req.Author != "John Doe" || req.OutputFormat != model.FormatWAV {
		t.Errorf("unexpected request %+v", req)
	}

	f.ExtractFull = true
	f.Format = ""
	req = f.Request()
	if err := req.Check(); err != nil {
		t.Fatalf("full request violates range invariant: %v", err)
	}
	if req.StartTime != nil || req.EndTime != nil {
		t.Error("full extraction must not send a range")
	}
	if req.OutputFormat != model.DefaultFormat {
		t.Errorf("expected default format, got %s", req.OutputFormat)
	}
}
