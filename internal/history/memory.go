package history

import (
	"context"
	"sync"
)

// MemoryStore хранит журнал в памяти процесса.
type MemoryStore struct {
	mu   sync.Mutex
	recs []Record
	byID map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: map[string]int{}}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byID[rec.ID]; ok {
		s.recs[i] = rec
		return nil
	}
	s.byID[rec.ID] = len(s.recs)
	s.recs = append(s.recs, rec)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.recs[i], nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.recs)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Record, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.recs[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
