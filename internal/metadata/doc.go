package metadata

// Package metadata resolves video information for the URL being typed. Lookups
// are debounced so that only the last URL of a burst of edits reaches the
// service, and results are cached per URL for the lifetime of the resolver.
