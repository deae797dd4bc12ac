package validate

import "regexp"

// VideoIDLength is the length of a YouTube video identifier
const VideoIDLength = 11

// supportedURL matches every accepted watch/share/embed/shorts/live URL shape
// followed by an 11-character video id and an optional query tail.
var supportedURL = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/|youtube\.com/live/|m\.youtube\.com/watch\?v=|music\.youtube\.com/watch\?v=)([a-zA-Z0-9_-]{11})([?&].*)?$`)

// IsSupportedURL reports whether raw is a recognised video URL
func IsSupportedURL(raw string) bool {
	return supportedURL.MatchString(raw)
}

// VideoID extracts the video identifier from a supported URL, or "" if raw is
// not supported
func VideoID(raw string) string {
	m := supportedURL.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[4]
}
