package model

import "fmt"

// JobStatus mirrors the job as reported by the remote service
type JobStatus struct {
	JobID       string   `json:"job_id"`
	Status      JobState `json:"status"`
	Progress    string   `json:"progress,omitempty"`
	Percent     *float64 `json:"percent,omitempty"`
	Error       string   `json:"error,omitempty"`
	DownloadURL string   `json:"download_url,omitempty"`
}

// IsTerminal returns true once the service reports a final state
func (js *JobStatus) IsTerminal() bool {
	return js != nil && js.Status.IsTerminal()
}

// PercentValue returns the completion percent clamped to [0,100], or -1 if unknown
func (js *JobStatus) PercentValue() float64 {
	if js == nil || js.Percent == nil {
		return -1
	}
	p := *js.Percent
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Clone returns a deep copy safe to hand to other goroutines
func (js *JobStatus) Clone() *JobStatus {
	if js == nil {
		return nil
	}
	c := *js
	if js.Percent != nil {
		p := *js.Percent
		c.Percent = &p
	}
	return &c
}

// VideoInfo is an immutable metadata snapshot fetched once per source URL
type VideoInfo struct {
	Title     string  `json:"title"`
	Duration  float64 `json:"duration"`
	Uploader  string  `json:"uploader"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// ThumbnailURLTemplate builds the public preview image for a video id
const ThumbnailURLTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

// ThumbnailURL returns the thumbnail reported by the service, falling back to
// the public preview image for videoID
func (vi *VideoInfo) ThumbnailURL(videoID string) string {
	if vi != nil && vi.Thumbnail != "" {
		return vi.Thumbnail
	}
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf(ThumbnailURLTemplate, videoID)
}

// HistoryRecord is a completed job kept in the local history
type HistoryRecord struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Format    OutputFormat `json:"format"`
	Filename  string       `json:"filename,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// HistoryTimestampLayout renders the record time as a wall clock
const HistoryTimestampLayout = "3:04:05 PM"

// GetDisplayTitle returns the custom filename if set, otherwise the video title
func (hr HistoryRecord) GetDisplayTitle() string {
	if hr.Filename != "" {
		return hr.Filename
	}
	if hr.Title != "" {
		return hr.Title
	}
	return hr.ID
}
