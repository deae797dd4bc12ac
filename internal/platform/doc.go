package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers for saved extractions, opening links and files with the
// system handlers, and playlist listing via the ytdlp library.
