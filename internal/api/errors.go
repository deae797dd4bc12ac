package api

import (
	"errors"
	"fmt"
)

// Operation names used in errors and logs
const (
	OpVideoInfo = "video_info"
	OpCreateJob = "create_job"
	OpJobStatus = "job_status"
	OpCancelJob = "cancel_job"
	OpDownload  = "download"
)

// Generic messages used when the service gives no detail
const (
	MsgVideoInfoFailed = "Failed to get video information"
	MsgCreateFailed    = "Failed to create extraction job"
	MsgStatusFailed    = "Failed to get job status"
	MsgCancelFailed    = "Failed to cancel job"
	MsgDownloadFailed  = "Failed to download file"
)

// Error is returned for every failed call. Message is safe to show to the
// user; StatusCode is 0 when the request never got a response.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsTransport reports whether the request failed before a response arrived
func (e *Error) IsTransport() bool {
	return e.StatusCode == 0
}

// UserMessage returns the message to surface for err: the service-provided
// text for *Error, otherwise fallback
func UserMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
