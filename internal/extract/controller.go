package extract

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ytget/yt-snippet/internal/api"
	"github.com/ytget/yt-snippet/internal/model"
)

// DefaultPollInterval is the delay between two status requests
const DefaultPollInterval = 2000 * time.Millisecond

// User-facing messages
const (
	MsgConnectionLost = "Lost connection to server. Please check your internet."
	MsgStartFailed    = "Failed to start extraction"
)

var (
	// ErrNotCancellable is returned by Cancel outside the created and processing states
	ErrNotCancellable = errors.New("job cannot be cancelled in its current state")

	// ErrSuperseded is returned by Submit when a reset or newer submission
	// replaced it while the create call was in flight
	ErrSuperseded = errors.New("submission superseded")

	// ErrConnectionLost is reported by Snapshot.Err after a failed poll
	ErrConnectionLost = errors.New(MsgConnectionLost)
)

// Snapshot is an immutable view of the controller state
type Snapshot struct {
	State model.JobState
	Job   *model.JobStatus
	Info  *model.VideoInfo

	// Error is the message to show; empty when there is nothing to report
	Error string

	// ConnectionLost marks a failure of the local view rather than of the job;
	// the user has to resubmit
	ConnectionLost bool

	StartedAt time.Time
}

// JobID returns the current job id, or "" before creation
func (s Snapshot) JobID() string {
	if s.Job == nil {
		return ""
	}
	return s.Job.JobID
}

// Err returns the snapshot's error, if any, as an error value
func (s Snapshot) Err() error {
	switch {
	case s.ConnectionLost:
		return ErrConnectionLost
	case s.Error != "":
		return errors.New(s.Error)
	default:
		return nil
	}
}

// signal is a close-once channel
type signal struct {
	ch   chan struct{}
	once sync.Once
}

func newSignal() *signal {
	return &signal{ch: make(chan struct{})}
}

func (s *signal) close() {
	s.once.Do(func() { close(s.ch) })
}

// Controller owns the lifecycle of one extraction job at a time:
// idle -> submitting -> created/processing -> completed/failed/cancelled.
type Controller struct {
	remote   Remote
	history  HistoryAppender
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time

	mu             sync.Mutex
	state          model.JobState
	job            *model.JobStatus
	request        model.ExtractionRequest
	info           *model.VideoInfo
	errMsg         string
	connectionLost bool
	startedAt      time.Time
	generation     uint64
	stopPoll       context.CancelFunc
	pollDone       chan struct{}
	done           *signal
	onUpdate       func(Snapshot)
}

// Option configures a Controller
type Option func(*Controller)

// WithPollInterval overrides DefaultPollInterval
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithLogger sets the controller logger
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock replaces time.Now for start times and history timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates an idle controller. history may be nil.
func NewController(remote Remote, history HistoryAppender, opts ...Option) *Controller {
	done := newSignal()
	done.close()

	c := &Controller{
		remote:   remote,
		history:  history,
		interval: DefaultPollInterval,
		logger:   log.New(os.Stderr, "[extract] ", log.LstdFlags),
		now:      time.Now,
		state:    model.JobStateIdle,
		done:     done,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetUpdateCallback sets the function called after every state change. It
// runs on the goroutine that made the change (often the poller) and must not
// call Submit, Cancel or Reset synchronously.
func (c *Controller) SetUpdateCallback(callback func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = callback
}

// SetVideoInfo stores the latest resolved metadata; nil clears it
func (c *Controller) SetVideoInfo(info *model.VideoInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if info == nil {
		c.info = nil
		return
	}
	cp := *info
	c.info = &cp
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Done returns a channel closed when the current job's local view ends:
// terminal status, creation failure, or reset. It is closed while idle.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done.ch
}

// Submit creates a job for req and starts polling it. Any previous poller is
// stopped first. On creation failure the controller returns to idle with the
// service's message and Submit returns the error.
func (c *Controller) Submit(ctx context.Context, req model.ExtractionRequest) error {
	if err := req.Check(); err != nil {
		return err
	}

	c.mu.Lock()
	wait := c.stopPollingLocked()
	prev := c.done
	c.generation++
	gen := c.generation
	c.state = model.JobStateSubmitting
	c.job = nil
	c.errMsg = ""
	c.connectionLost = false
	c.request = req
	c.startedAt = c.now()
	c.done = newSignal()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	wait()
	prev.close()
	c.notify(snap)

	job, err := c.remote.CreateJob(ctx, req)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		c.state = model.JobStateIdle
		c.errMsg = api.UserMessage(err, MsgStartFailed)
		sig := c.done
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Printf("Failed to create extraction job: %v", err)
		c.notify(snap)
		sig.close()
		return err
	}

	c.job = job.Clone()
	c.state = stateFor(job.Status)
	c.logger.Printf("Job %s created with status %s", job.JobID, job.Status)

	var rec *model.HistoryRecord
	var sig *signal
	if c.state.IsTerminal() {
		rec, sig = c.finishLocked()
	} else {
		c.startPollingLocked(job.JobID, gen)
	}
	snap = c.snapshotLocked()
	c.mu.Unlock()

	c.appendHistory(rec)
	c.notify(snap)
	if sig != nil {
		sig.close()
	}
	return nil
}

// Cancel asks the service to cancel the current job. Whatever the outcome of
// that call, the local status becomes cancelled and polling stops, unless the
// job reached another terminal status in the meantime.
func (c *Controller) Cancel(ctx context.Context) error {
	c.mu.Lock()
	if c.job == nil || !c.state.CanCancel() {
		c.mu.Unlock()
		return ErrNotCancellable
	}
	jobID := c.job.JobID
	gen := c.generation
	c.mu.Unlock()

	if err := c.remote.CancelJob(ctx, jobID); err != nil {
		c.logger.Printf("Cancel request for job %s failed: %v", jobID, err)
	}

	c.mu.Lock()
	if gen != c.generation || c.state.IsTerminal() {
		c.mu.Unlock()
		return nil
	}
	c.job.Status = model.JobStateCancelled
	c.state = model.JobStateCancelled
	wait := c.stopPollingLocked()
	sig := c.done
	snap := c.snapshotLocked()
	c.mu.Unlock()

	wait()
	c.notify(snap)
	sig.close()
	return nil
}

// Reset stops polling and clears the job, error and metadata. Safe in any state.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.generation++
	wait := c.stopPollingLocked()
	sig := c.done
	c.state = model.JobStateIdle
	c.job = nil
	c.info = nil
	c.errMsg = ""
	c.connectionLost = false
	c.request = model.ExtractionRequest{}
	c.startedAt = time.Time{}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	wait()
	sig.close()
	c.notify(snap)
}

func (c *Controller) startPollingLocked(jobID string, gen uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.stopPoll = cancel
	c.pollDone = done
	go c.pollLoop(ctx, jobID, gen, done)
}

// stopPollingLocked cancels the poller and returns a function that waits for
// it to exit. The poller itself must not call the returned function.
// Calling it with no active poller is a no-op.
func (c *Controller) stopPollingLocked() func() {
	if c.stopPoll == nil {
		return func() {}
	}
	c.stopPoll()
	done := c.pollDone
	c.stopPoll = nil
	c.pollDone = nil
	return func() { <-done }
}

func (c *Controller) pollLoop(ctx context.Context, jobID string, gen uint64, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return
		}

		status, err := c.remote.JobStatus(ctx, jobID)
		if ctx.Err() != nil {
			return
		}
		if !c.applyPoll(jobID, gen, status, err) {
			return
		}
	}
}

// applyPoll folds one poll result into the state and reports whether polling
// should continue. Transport errors end the job view without retrying.
func (c *Controller) applyPoll(jobID string, gen uint64, status *model.JobStatus, err error) bool {
	c.mu.Lock()
	if gen != c.generation || c.state.IsTerminal() {
		c.mu.Unlock()
		return false
	}

	var rec *model.HistoryRecord
	var sig *signal
	if err == nil && status == nil {
		err = errors.New("empty status response")
	}
	if err != nil {
		c.logger.Printf("Polling error for job %s: %v", jobID, err)
		c.stopPollingLocked()
		c.state = model.JobStateFailed
		c.errMsg = MsgConnectionLost
		c.connectionLost = true
		sig = c.done
	} else {
		next := status.Clone()
		if next.JobID == "" {
			next.JobID = jobID
		}
		if next.Error == "" && c.job != nil {
			next.Error = c.job.Error
		}
		c.job = next
		c.state = stateFor(next.Status)
		if c.state.IsTerminal() {
			rec, sig = c.finishLocked()
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.appendHistory(rec)
	c.notify(snap)
	if sig != nil {
		sig.close()
		return false
	}
	return true
}

// finishLocked handles a terminal status reported by the service. It returns
// the history record to append (completed jobs with resolved metadata only)
// and the signal to close once side effects are done.
func (c *Controller) finishLocked() (*model.HistoryRecord, *signal) {
	c.stopPollingLocked()
	c.logger.Printf("Job %s finished with status %s", c.job.JobID, c.state)

	switch c.state {
	case model.JobStateCompleted:
		if c.info == nil {
			return nil, c.done
		}
		return &model.HistoryRecord{
			ID:        c.job.JobID,
			Title:     c.info.Title,
			Format:    c.request.OutputFormat,
			Filename:  c.request.Filename,
			Timestamp: c.now().Format(model.HistoryTimestampLayout),
		}, c.done
	default:
		if c.job.Error != "" {
			c.errMsg = c.job.Error
		}
		return nil, c.done
	}
}

func (c *Controller) appendHistory(rec *model.HistoryRecord) {
	if rec == nil || c.history == nil {
		return
	}
	if err := c.history.Append(*rec); err != nil {
		c.logger.Printf("Failed to save history for job %s: %v", rec.ID, err)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		State:          c.state,
		Job:            c.job.Clone(),
		Error:          c.errMsg,
		ConnectionLost: c.connectionLost,
		StartedAt:      c.startedAt,
	}
	if c.info != nil {
		info := *c.info
		s.Info = &info
	}
	return s
}

// notify calls the update callback if set
func (c *Controller) notify(s Snapshot) {
	c.mu.Lock()
	callback := c.onUpdate
	c.mu.Unlock()

	if callback != nil {
		callback(s)
	}
}

// stateFor maps a service status to a local state; unknown statuses count as processing
func stateFor(status model.JobState) model.JobState {
	if status.IsRemote() {
		return status
	}
	return model.JobStateProcessing
}
