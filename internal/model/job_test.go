package model

import (
	"encoding/json"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func TestJobStatus_PercentValue(t *testing.T) {
	tests := []struct {
		percent  *float64
		expected float64
	}{
		{nil, -1},
		{floatPtr(-3), 0},
		{floatPtr(42.5), 42.5},
		{floatPtr(140), 100},
	}

	for _, test := range tests {
		js := &JobStatus{Percent: test.percent}
		if got := js.PercentValue(); got != test.expected {
			t.Errorf("PercentValue() = %v, expected %v", got, test.expected)
		}
	}
}

func TestJobStatus_CloneIsDeep(t *testing.T) {
	orig := &JobStatus{JobID: "j1", Status: JobStateProcessing, Percent: floatPtr(10)}
	clone := orig.Clone()
	*clone.Percent = 90
	clone.Status = JobStateCompleted

	if *orig.Percent != 10 || orig.Status != JobStateProcessing {
		t.Errorf("mutating the clone changed the original: %+v", orig)
	}

	var nilStatus *JobStatus
	if nilStatus.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestJobStatus_Decode(t *testing.T) {
	payload := `{"job_id":"abc","status":"processing","progress":"Downloading","percent":50}`
	var js JobStatus
	if err := json.Unmarshal([]byte(payload), &js); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if js.JobID != "abc" || js.Status != JobStateProcessing || js.PercentValue() != 50 {
		t.Errorf("unexpected decode result: %+v", js)
	}
	if js.IsTerminal() {
		t.Error("processing is not terminal")
	}
}

func TestVideoInfo_ThumbnailURL(t *testing.T) {
	tests := []struct {
		info     *VideoInfo
		videoID  string
		expected string
	}{
		{&VideoInfo{Thumbnail: "https://cdn/x.jpg"}, "dQw4w9WgXcQ", "https://cdn/x.jpg"},
		{&VideoInfo{}, "dQw4w9WgXcQ", "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"},
		{nil, "dQw4w9WgXcQ", "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"},
		{nil, "", ""},
	}

	for _, test := range tests {
		if got := test.info.ThumbnailURL(test.videoID); got != test.expected {
			t.Errorf("ThumbnailURL(%q) = %q, expected %q", test.videoID, got, test.expected)
		}
	}
}

func TestHistoryRecord_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		record   HistoryRecord
		expected string
	}{
		{HistoryRecord{ID: "1", Title: "Sermon", Filename: "my-clip"}, "my-clip"},
		{HistoryRecord{ID: "1", Title: "Sermon"}, "Sermon"},
		{HistoryRecord{ID: "1"}, "1"},
	}

	for _, test := range tests {
		if got := test.record.GetDisplayTitle(); got != test.expected {
			t.Errorf("GetDisplayTitle() = %q, expected %q", got, test.expected)
		}
	}
}
