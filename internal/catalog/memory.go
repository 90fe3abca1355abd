package catalog

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is a development and test implementation of Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) GetAll(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.records))
	for id, rec := range s.records {
		entries = append(entries, Entry{ID: id, Record: rec.clone()})
	}
	sortEntries(entries)
	return entries, nil
}

func (s *MemoryStore) GetOne(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[strings.TrimSpace(id)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec.clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, id string, rec Record) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if len(rec.Episodes) == 0 {
		return ErrNoEpisodes
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec.clone()
	return nil
}
