package validate

// Package validate checks raw form input before anything reaches the network:
// the accepted YouTube URL shapes, the flexible timestamp format, and the span
// limits for snippet and full extraction.
