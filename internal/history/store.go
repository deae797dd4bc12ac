package history

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/ytget/yt-snippet/internal/model"
	"github.com/ytget/yt-snippet/internal/storage"
)

// Store settings
const (
	StorageKey = "extraction_history"
	Capacity   = 50
)

// Store is the newest-first, capacity-bounded list of completed jobs,
// persisted as one JSON entry in the injected storage
type Store struct {
	storage storage.Storage
	logger  *log.Logger

	mu      sync.RWMutex
	records []model.HistoryRecord
}

// NewStore creates an empty store over s. Call Load to read persisted records.
func NewStore(s storage.Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(os.Stderr, "[history] ", log.LstdFlags)
	}
	return &Store{storage: s, logger: logger}
}

// Load replaces the in-memory list with the persisted one. A corrupt payload
// is logged and treated as empty history; only storage failures are returned.
func (s *Store) Load() error {
	raw, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	if !ok || raw == "" {
		return nil
	}

	records, err := decode([]byte(raw))
	if err != nil {
		s.logger.Printf("Failed to parse history, starting empty: %v", err)
		return nil
	}
	if len(records) > Capacity {
		records = records[:Capacity]
	}
	s.records = records
	return nil
}

// Append prepends rec, drops entries beyond Capacity, and persists the list
func (s *Store) Append(rec model.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]model.HistoryRecord, 0, min(len(s.records)+1, Capacity))
	updated = append(updated, rec)
	for _, r := range s.records {
		if len(updated) == Capacity {
			break
		}
		updated = append(updated, r)
	}
	s.records = updated

	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.storage.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Clear empties the history and removes the persisted copy, but only after
// confirm returns true. It reports whether the history was cleared.
func (s *Store) Clear(confirm func() bool) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	if err := s.storage.Remove(StorageKey); err != nil {
		return true, fmt.Errorf("remove history: %w", err)
	}
	return true, nil
}

// Records returns a newest-first copy of the history
func (s *Store) Records() []model.HistoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.HistoryRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
