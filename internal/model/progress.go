package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// StatusCategory groups job statuses for user-facing messages
type StatusCategory string

const (
	CategoryCreated     StatusCategory = "created"
	CategoryProcessing  StatusCategory = "processing"
	CategoryDownloading StatusCategory = "downloading"
	CategoryTrimming    StatusCategory = "trimming"
	CategoryCompleted   StatusCategory = "completed"
	CategoryFailed      StatusCategory = "failed"
	CategoryCancelled   StatusCategory = "cancelled"
)

// ETA estimation starts once this much of the job is done
const MinPercentForETA = 5.0

// Category maps a job status (and its progress label while processing) to a
// message category
func Category(js *JobStatus) StatusCategory {
	if js == nil {
		return CategoryProcessing
	}
	switch js.Status {
	case JobStateCreated:
		return CategoryCreated
	case JobStateCompleted:
		return CategoryCompleted
	case JobStateFailed:
		return CategoryFailed
	case JobStateCancelled:
		return CategoryCancelled
	}
	progress := strings.ToLower(js.Progress)
	switch {
	case strings.Contains(progress, "trim"):
		return CategoryTrimming
	case strings.Contains(progress, "download"):
		return CategoryDownloading
	}
	return CategoryProcessing
}

// EstimateRemaining extrapolates the time left from the elapsed time and the
// reported percent. ok is false when no estimate can be made.
func EstimateRemaining(js *JobStatus, elapsed time.Duration) (remaining time.Duration, ok bool) {
	if js == nil || js.Status != JobStateProcessing {
		return 0, false
	}
	percent := js.PercentValue()
	if percent <= MinPercentForETA || elapsed <= 0 {
		return 0, false
	}
	total := float64(elapsed) / percent * 100
	left := time.Duration(total) - elapsed
	if left < 0 {
		left = 0
	}
	return left, true
}

// FormatRemaining renders an estimate as "~42s remaining" or "~3 min remaining"
func FormatRemaining(d time.Duration) string {
	secs := d.Seconds()
	if secs < 60 {
		return fmt.Sprintf("~%ds remaining", int(math.Ceil(secs)))
	}
	return fmt.Sprintf("~%d min remaining", int(math.Ceil(secs/60)))
}

// FormatDuration renders seconds as "1h 2m 3s", "2m 5s" or "7s"
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := int(seconds)
	h := whole / 3600
	m := (whole % 3600) / 60
	s := int(math.Round(math.Mod(seconds, 60)))

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
