package metadata

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ytget/yt-snippet/internal/model"
	"github.com/ytget/yt-snippet/internal/validate"
)

// DefaultDelay is the quiet period after the last edit before a lookup starts
const DefaultDelay = 500 * time.Millisecond

var errEmptyInfo = errors.New("empty video info response")

// InfoFetcher fetches metadata for one URL
type InfoFetcher interface {
	VideoInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error)
}

// Resolver debounces metadata lookups. At most one timer is pending and at
// most one lookup is in flight; a newer Update supersedes both.
type Resolver struct {
	fetcher InfoFetcher
	delay   time.Duration
	logger  *log.Logger

	mu        sync.Mutex
	seq       uint64
	timer     *time.Timer
	cancel    context.CancelFunc
	current   *model.VideoInfo
	cache     map[string]model.VideoInfo
	onResolve func(*model.VideoInfo)
	stopped   bool
}

// Option configures a Resolver
type Option func(*Resolver)

// WithDelay overrides DefaultDelay
func WithDelay(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.delay = d
		}
	}
}

// WithLogger sets the resolver logger
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver backed by fetcher
func NewResolver(fetcher InfoFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		delay:   DefaultDelay,
		logger:  log.New(os.Stderr, "[metadata] ", log.LstdFlags),
		cache:   make(map[string]model.VideoInfo),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// SetCallback sets the function receiving every change of the resolved
// metadata; nil means cleared. It runs on a timer goroutine.
func (r *Resolver) SetCallback(callback func(*model.VideoInfo)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onResolve = callback
}

// Update schedules a lookup for url, replacing any pending or running one.
// An unrecognised URL clears the resolved metadata right away.
func (r *Resolver) Update(url string) {
	url = strings.TrimSpace(url)

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.supersedeLocked()
	seq := r.seq

	if !validate.IsSupportedURL(url) {
		r.current = nil
		callback := r.onResolve
		r.mu.Unlock()
		if callback != nil {
			callback(nil)
		}
		return
	}

	if cached, ok := r.cache[url]; ok {
		r.current = &cached
		callback := r.onResolve
		info := cached
		r.mu.Unlock()
		if callback != nil {
			callback(&info)
		}
		return
	}

	r.timer = time.AfterFunc(r.delay, func() {
		r.fetch(seq, url)
	})
	r.mu.Unlock()
}

// Resolve fetches metadata for url immediately, bypassing the debounce but
// using the cache. The result becomes the current metadata.
func (r *Resolver) Resolve(ctx context.Context, url string) (*model.VideoInfo, error) {
	url = strings.TrimSpace(url)

	r.mu.Lock()
	r.supersedeLocked()
	seq := r.seq
	if cached, ok := r.cache[url]; ok {
		r.current = &cached
		info := cached
		r.mu.Unlock()
		return &info, nil
	}
	r.mu.Unlock()

	info, err := r.fetcher.VideoInfo(ctx, url)
	if err == nil && info == nil {
		err = errEmptyInfo
	}
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[url] = *info
	if seq == r.seq {
		stored := *info
		r.current = &stored
	}
	r.mu.Unlock()

	out := *info
	return &out, nil
}

// Current returns the last resolved metadata, or nil
func (r *Resolver) Current() *model.VideoInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return nil
	}
	info := *r.current
	return &info
}

// Stop drops pending and running lookups; later updates are ignored
func (r *Resolver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
	r.stopped = true
}

// supersedeLocked invalidates the pending timer and the running lookup
func (r *Resolver) supersedeLocked() {
	r.seq++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Resolver) fetch(seq uint64, url string) {
	r.mu.Lock()
	if seq != r.seq || r.stopped {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.timer = nil
	r.mu.Unlock()

	info, err := r.fetcher.VideoInfo(ctx, url)
	cancel()
	if err == nil && info == nil {
		err = errEmptyInfo
	}

	r.mu.Lock()
	if seq != r.seq {
		r.mu.Unlock()
		return
	}
	r.cancel = nil
	if err != nil {
		r.mu.Unlock()
		r.logger.Printf("Failed to fetch video info for %s: %v", url, err)
		return
	}

	r.cache[url] = *info
	stored := *info
	r.current = &stored
	callback := r.onResolve
	r.mu.Unlock()

	if callback != nil {
		out := *info
		callback(&out)
	}
}
