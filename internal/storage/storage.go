package storage

// Package storage provides the key/value capability the history store
// persists through. Backends are injected so tests can swap in memory.

// Storage is a string key/value store
type Storage interface {
	// Get returns the value for key and whether it exists
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(key, value string) error

	// Remove deletes key; removing a missing key is not an error
	Remove(key string) error
}
