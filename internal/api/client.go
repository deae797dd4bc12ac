package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-snippet/internal/model"
)

// Client defaults
const (
	DefaultBaseURL = "https://livingseed-cut.onrender.com"
	DefaultTimeout = 30 * time.Second

	CacheBusterParam = "cb"
	RequestIDHeader  = "X-Request-ID"
)

// Service routes
const (
	pathVideoInfo = "/video-info"
	pathExtract   = "/extract"
	pathJobs      = "/jobs/"
	pathDownload  = "/download/"
	suffixCancel  = "/cancel"
)

// Client talks to the remote extraction service over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a client for the service at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.New(os.Stderr, "[api] ", log.LstdFlags),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// VideoInfo resolves metadata for a source URL
func (c *Client) VideoInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	body := map[string]string{"url": videoURL}
	var info model.VideoInfo
	if err := c.doJSON(ctx, OpVideoInfo, http.MethodPost, pathVideoInfo, body, &info, MsgVideoInfoFailed, false); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateJob submits an extraction request. On rejection the service's
// `detail` message is returned verbatim when present.
func (c *Client) CreateJob(ctx context.Context, req model.ExtractionRequest) (*model.JobStatus, error) {
	var job model.JobStatus
	if err := c.doJSON(ctx, OpCreateJob, http.MethodPost, pathExtract, req, &job, MsgCreateFailed, true); err != nil {
		return nil, err
	}
	if job.JobID == "" {
		return nil, &Error{Op: OpCreateJob, Message: MsgCreateFailed, Cause: fmt.Errorf("response has no job_id")}
	}
	return &job, nil
}

// JobStatus fetches the current status of a job
func (c *Client) JobStatus(ctx context.Context, jobID string) (*model.JobStatus, error) {
	var status model.JobStatus
	path := pathJobs + url.PathEscape(jobID)
	if err := c.doJSON(ctx, OpJobStatus, http.MethodGet, path, nil, &status, MsgStatusFailed, false); err != nil {
		return nil, err
	}
	return &status, nil
}

// CancelJob asks the service to cancel a job. The acknowledgement body is
// implementation-defined and ignored.
func (c *Client) CancelJob(ctx context.Context, jobID string) error {
	path := pathJobs + url.PathEscape(jobID) + suffixCancel
	return c.doJSON(ctx, OpCancelJob, http.MethodPost, path, nil, nil, MsgCancelFailed, false)
}

// DownloadURL builds the fetchable reference for a completed job
func (c *Client) DownloadURL(jobID string) string {
	return c.endpoint(pathDownload + url.PathEscape(jobID))
}

// Download streams the output of a completed job into w and returns the file
// name suggested by the service, if any
func (c *Client) Download(ctx context.Context, jobID string, w io.Writer) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathDownload+url.PathEscape(jobID), nil)
	if err != nil {
		return "", &Error{Op: OpDownload, Message: MsgDownloadFailed, Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("%s failed: %v", OpDownload, err)
		return "", &Error{Op: OpDownload, Message: MsgDownloadFailed, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", &Error{Op: OpDownload, StatusCode: resp.StatusCode, Message: MsgDownloadFailed}
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", &Error{Op: OpDownload, StatusCode: resp.StatusCode, Message: MsgDownloadFailed, Cause: err}
	}
	return filenameFromDisposition(resp.Header.Get("Content-Disposition")), nil
}

// endpoint joins path to the base URL and appends a cache buster
func (c *Client) endpoint(path string) string {
	q := url.Values{}
	q.Set(CacheBusterParam, uuid.NewString())
	return c.baseURL + path + "?" + q.Encode()
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil || method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// doJSON performs one request and decodes a 2xx JSON response into out.
// When useDetail is set, a non-2xx body's `detail` string becomes the message.
func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any, generic string, useDetail bool) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return &Error{Op: op, Message: generic, Cause: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("%s %s failed after %dms: %v", op, req.Header.Get(RequestIDHeader), time.Since(start).Milliseconds(), err)
		return &Error{Op: op, Message: generic, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Message: generic, Cause: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode/100 != 2 {
		c.logger.Printf("%s %s returned status %d", op, req.Header.Get(RequestIDHeader), resp.StatusCode)
		msg := generic
		if useDetail {
			if detail := parseDetail(raw); detail != "" {
				msg = detail
			}
		}
		return &Error{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, StatusCode: resp.StatusCode, Message: generic, Cause: fmt.Errorf("decode json: %w", err)}
	}
	return nil
}

// parseDetail extracts a string `detail` field from an error body. Structured
// details (such as lists of field errors) are ignored.
func parseDetail(raw []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
