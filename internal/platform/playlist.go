package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistParam = "list"
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
	PlaylistSuffix      = " Playlist"
	MinPrefixLength     = 10
)

// YouTubeVideoURLTemplate builds a watch link for a video id
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// PlaylistEntry is one video of a playlist
type PlaylistEntry struct {
	ID    string
	Title string
	URL   string
}

// Playlist is the listing of a playlist URL
type Playlist struct {
	ID      string
	Title   string
	Entries []PlaylistEntry
}

// fetchFunc lists the entries of a playlist id
type fetchFunc func(ctx context.Context, playlistID string) ([]PlaylistEntry, error)

// PlaylistLister lists the videos of a YouTube playlist so the user can pick
// one of them for extraction
type PlaylistLister struct {
	timeout time.Duration
	fetch   fetchFunc
}

// NewPlaylistLister creates a lister backed by the ytdlp library
func NewPlaylistLister() *PlaylistLister {
	return &PlaylistLister{
		timeout: DefaultPlaylistTimeout,
		fetch:   fetchWithYTDLP,
	}
}

// SetTimeout sets the timeout for listing operations
func (p *PlaylistLister) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// HasPlaylist reports whether link carries a playlist id
func HasPlaylist(link string) bool {
	return PlaylistID(link) != ""
}

// PlaylistID extracts the list= parameter of link, or ""
func PlaylistID(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	return u.Query().Get(PlaylistParam)
}

// List returns the entries of the playlist referenced by link
func (p *PlaylistLister) List(ctx context.Context, link string) (*Playlist, error) {
	playlistID := PlaylistID(link)
	if playlistID == "" {
		return nil, fmt.Errorf("no playlist id in URL: %s", link)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	entries, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	return &Playlist{
		ID:      playlistID,
		Title:   playlistTitle(entries),
		Entries: entries,
	}, nil
}

func fetchWithYTDLP(ctx context.Context, playlistID string) ([]PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, PlaylistEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}

// playlistTitle derives a title from the common prefix of the first entries
func playlistTitle(entries []PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		prefix := findCommonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

// findCommonPrefix finds the common prefix between two strings
func findCommonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
