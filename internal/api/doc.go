package api

// Package api is a thin typed client for the remote extraction service:
// metadata lookup, job creation, status polling, cancellation, and download
// references. It never retries; every failure is returned to the caller.
