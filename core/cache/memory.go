package cache

import (
	"context"
	"sync"
)

// DefaultMaxEntries bounds a MemoryStore created without a limit.
const DefaultMaxEntries = 64

// MemoryStore keeps values in memory, evicting the oldest insertion once
// full.
type MemoryStore struct {
	mu    sync.Mutex
	max   int
	data  map[string][]byte
	order []string
}

// NewMemoryStore returns an empty MemoryStore holding at most max entries.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &MemoryStore{max: max, data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		for len(s.order) >= s.max {
			delete(s.data, s.order[0])
			s.order = s.order[1:]
		}
		s.order = append(s.order, key)
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *MemoryStore) Close() error { return nil }
