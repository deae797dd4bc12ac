package model

// JobState represents the local lifecycle state of an extraction job
type JobState string

const (
	// JobStateIdle means no job is active and the form is editable
	JobStateIdle JobState = "idle"

	// JobStateSubmitting means the create-job call is in flight
	JobStateSubmitting JobState = "submitting"

	// JobStateCreated means the service accepted the job but has not started it
	JobStateCreated JobState = "created"

	// JobStateProcessing means the service is working on the job
	JobStateProcessing JobState = "processing"

	// JobStateCompleted means the output is ready for download
	JobStateCompleted JobState = "completed"

	// JobStateFailed means the job (or the connection to it) failed
	JobStateFailed JobState = "failed"

	// JobStateCancelled means the user cancelled the job
	JobStateCancelled JobState = "cancelled"
)

// String returns the string representation of JobState
func (js JobState) String() string {
	return string(js)
}

// IsActive returns true while a job is being submitted or worked on
func (js JobState) IsActive() bool {
	return js == JobStateSubmitting || js == JobStateCreated || js == JobStateProcessing
}

// IsTerminal returns true if no further transition can happen (completed, failed, or cancelled)
func (js JobState) IsTerminal() bool {
	return js == JobStateCompleted || js == JobStateFailed || js == JobStateCancelled
}

// CanCancel returns true if a cancel request is allowed in this state
func (js JobState) CanCancel() bool {
	return js == JobStateCreated || js == JobStateProcessing
}

// IsRemote returns true for states the remote service reports
func (js JobState) IsRemote() bool {
	return js == JobStateCreated || js == JobStateProcessing || js.IsTerminal()
}
