package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/yt-snippet/internal/extract"
	"github.com/ytget/yt-snippet/internal/metadata"
	"github.com/ytget/yt-snippet/internal/model"
)

const testVideoURL = "https://youtu.be/dQw4w9WgXcQ"

type stubFetcher struct {
	info *model.VideoInfo
	err  error
	// waitForCancel blocks the lookup until ctx is done
	waitForCancel bool
}

func (f *stubFetcher) VideoInfo(ctx context.Context, url string) (*model.VideoInfo, error) {
	if f.waitForCancel {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.info, f.err
}

type stubRemote struct {
	mu       sync.Mutex
	creates  int
	cancels  int
	created  model.JobState
	onCreate func()
}

func (r *stubRemote) CreateJob(ctx context.Context, req model.ExtractionRequest) (*model.JobStatus, error) {
	r.mu.Lock()
	r.creates++
	onCreate := r.onCreate
	r.mu.Unlock()
	if onCreate != nil {
		onCreate()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &model.JobStatus{JobID: "job-1", Status: r.created}, nil
}

func (r *stubRemote) JobStatus(ctx context.Context, jobID string) (*model.JobStatus, error) {
	return &model.JobStatus{JobID: jobID, Status: model.JobStateProcessing}, nil
}

func (r *stubRemote) CancelJob(ctx context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancels++
	return nil
}

func (r *stubRemote) counts() (creates, cancels int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates, r.cancels
}

type stubHistory struct {
	mu      sync.Mutex
	records []model.HistoryRecord
}

func (h *stubHistory) Append(rec model.HistoryRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, rec)
	return nil
}

func (h *stubHistory) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func runWith(ctx context.Context, t *testing.T, opts options, f *stubFetcher, r *stubRemote, h *stubHistory) (extract.Snapshot, error) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	resolver := metadata.NewResolver(f, metadata.WithLogger(logger))
	defer resolver.Stop()
	controller := extract.NewController(r, h, extract.WithPollInterval(5*time.Millisecond), extract.WithLogger(logger))
	defer controller.Reset()

	type result struct {
		snap extract.Snapshot
		err  error
	}
	done := make(chan result, 1)
	go func() {
		snap, err := runExtraction(ctx, opts, resolver, controller, logger)
		done <- result{snap, err}
	}()

	select {
	case res := <-done:
		return res.snap, res.err
	case <-time.After(5 * time.Second):
		t.Fatal("runExtraction did not return")
		return extract.Snapshot{}, nil
	}
}

func snippetOptions() options {
	return options{url: testVideoURL, start: "1:30", end: "2:00", format: "mp3"}
}

func TestRunExtraction_MetadataFailureDoesNotBlock(t *testing.T) {
	f := &stubFetcher{err: errors.New("Failed to get video information")}
	r := &stubRemote{created: model.JobStateCompleted}
	h := &stubHistory{}

	snap, err := runWith(context.Background(), t, snippetOptions(), f, r, h)
	if err != nil {
		t.Fatalf("runExtraction failed: %v", err)
	}
	if creates, _ := r.counts(); creates != 1 {
		t.Errorf("expected the job to be created, got %d create calls", creates)
	}
	if snap.State != model.JobStateCompleted {
		t.Errorf("expected completed, got %s", snap.State)
	}
	if snap.Info != nil {
		t.Errorf("expected no metadata, got %+v", snap.Info)
	}
	if h.len() != 0 {
		t.Error("a job without metadata must not be recorded")
	}
}

func TestRunExtraction_ValidatesAgainstMetadata(t *testing.T) {
	f := &stubFetcher{info: &model.VideoInfo{Title: "Short", Duration: 100}}
	r := &stubRemote{created: model.JobStateCompleted}
	h := &stubHistory{}

	_, err := runWith(context.Background(), t, snippetOptions(), f, r, h)
	if err == nil || !strings.Contains(err.Error(), "exceeds video duration") {
		t.Fatalf("expected duration error, got %v", err)
	}
	if creates, _ := r.counts(); creates != 0 {
		t.Errorf("invalid input reached the service: %d create calls", creates)
	}
}

func TestRunExtraction_CompletedWithMetadataIsRecorded(t *testing.T) {
	f := &stubFetcher{info: &model.VideoInfo{Title: "Talk", Duration: 600}}
	r := &stubRemote{created: model.JobStateCompleted}
	h := &stubHistory{}

	snap, err := runWith(context.Background(), t, snippetOptions(), f, r, h)
	if err != nil {
		t.Fatalf("runExtraction failed: %v", err)
	}
	if snap.Info == nil || snap.Info.Title != "Talk" {
		t.Errorf("unexpected metadata %+v", snap.Info)
	}
	if h.len() != 1 {
		t.Errorf("expected one history record, got %d", h.len())
	}
}

func TestRunExtraction_InterruptDuringLookup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := &stubFetcher{waitForCancel: true}
	r := &stubRemote{created: model.JobStateCreated}
	h := &stubHistory{}

	time.AfterFunc(20*time.Millisecond, cancel)
	_, err := runWith(ctx, t, snippetOptions(), f, r, h)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if creates, _ := r.counts(); creates != 0 {
		t.Errorf("no job should be created after an interrupt, got %d", creates)
	}
}

func TestRunExtraction_InterruptDuringCreateCancelsJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := &stubFetcher{info: &model.VideoInfo{Title: "Talk", Duration: 600}}
	r := &stubRemote{created: model.JobStateCreated, onCreate: cancel}
	h := &stubHistory{}

	snap, err := runWith(ctx, t, snippetOptions(), f, r, h)
	if err != nil {
		t.Fatalf("runExtraction failed: %v", err)
	}
	creates, cancels := r.counts()
	if creates != 1 {
		t.Errorf("expected one create call, got %d", creates)
	}
	if cancels != 1 {
		t.Errorf("the job created during the interrupt must be cancelled, got %d cancel calls", cancels)
	}
	if snap.State != model.JobStateCancelled {
		t.Errorf("expected cancelled, got %s", snap.State)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes ", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.input), &out, "Clear?"); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(out.String(), "Clear? [y/N]") {
			t.Errorf("prompt not written, got %q", out.String())
		}
	}
}

func TestBuildForm(t *testing.T) {
	form, err := buildForm(options{url: " https://youtu.be/abcdefghijk ", start: "1:00", end: "2:00", format: "WAV"})
	if err != nil {
		t.Fatalf("buildForm failed: %v", err)
	}
	if form.URL != "https://youtu.be/abcdefghijk" {
		t.Errorf("url not trimmed: %q", form.URL)
	}
	if form.Format != model.FormatWAV {
		t.Errorf("expected wav, got %q", form.Format)
	}

	if _, err := buildForm(options{format: "flac"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestProgressLine(t *testing.T) {
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	half := 50.0

	tests := []struct {
		name string
		snap extract.Snapshot
		now  time.Time
		want string
	}{
		{
			name: "idle is silent",
			snap: extract.Snapshot{State: model.JobStateIdle},
			want: "",
		},
		{
			name: "submitting",
			snap: extract.Snapshot{State: model.JobStateSubmitting},
			want: "Submitting job...",
		},
		{
			name: "processing with percent and eta",
			snap: extract.Snapshot{
				State:     model.JobStateProcessing,
				Job:       &model.JobStatus{JobID: "j1", Status: model.JobStateProcessing, Progress: "Trimming", Percent: &half},
				StartedAt: started,
			},
			now:  started.Add(30 * time.Second),
			want: "[processing] Trimming 50% ETA " + model.FormatRemaining(30*time.Second),
		},
		{
			name: "created without progress",
			snap: extract.Snapshot{
				State: model.JobStateCreated,
				Job:   &model.JobStatus{JobID: "j1", Status: model.JobStateCreated},
			},
			want: "[created]",
		},
		{
			name: "failed with message",
			snap: extract.Snapshot{State: model.JobStateFailed, Error: "boom"},
			want: "[failed] boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressLine(tt.snap, tt.now); got != tt.want {
				t.Errorf("progressLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestedName(t *testing.T) {
	snap := extract.Snapshot{
		Job:  &model.JobStatus{JobID: "job-1"},
		Info: &model.VideoInfo{Title: "Talk"},
	}

	if got := suggestedName(options{format: "mp3"}, snap); got != "Talk.mp3" {
		t.Errorf("expected title based name, got %q", got)
	}
	if got := suggestedName(options{format: "mp4", filename: "clip"}, snap); got != "clip.mp4" {
		t.Errorf("expected custom name, got %q", got)
	}
	if got := suggestedName(options{format: "wav"}, extract.Snapshot{Job: &model.JobStatus{JobID: "job-2"}}); got != "job-2.wav" {
		t.Errorf("expected job id name, got %q", got)
	}
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, nil, nil)
	if !strings.Contains(out.String(), "No extractions yet") {
		t.Errorf("unexpected empty output %q", out.String())
	}

	out.Reset()
	records := []model.HistoryRecord{{ID: "j1", Title: "Talk", Format: model.FormatMP3, Timestamp: "2:05:09 PM"}}
	printHistory(&out, records, func(id string) string { return "http://svc/download/" + id })
	got := out.String()
	for _, want := range []string{"Talk", "mp3", "2:05:09 PM", "http://svc/download/j1"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}
