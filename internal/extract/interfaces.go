package extract

import (
	"context"

	"github.com/ytget/yt-snippet/internal/model"
)

// Remote is the subset of the service client the controller needs
type Remote interface {
	CreateJob(ctx context.Context, req model.ExtractionRequest) (*model.JobStatus, error)
	JobStatus(ctx context.Context, jobID string) (*model.JobStatus, error)
	CancelJob(ctx context.Context, jobID string) error
}

// HistoryAppender records completed jobs
type HistoryAppender interface {
	Append(rec model.HistoryRecord) error
}

// Extractor defines the interface of the job lifecycle controller.
type Extractor interface {
	SetUpdateCallback(func(Snapshot))
	SetVideoInfo(info *model.VideoInfo)
	Submit(ctx context.Context, req model.ExtractionRequest) error
	Cancel(ctx context.Context) error
	Reset()
	Snapshot() Snapshot
	Done() <-chan struct{}
}
