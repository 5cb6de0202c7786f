// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a non-durable Store used for tests and the "memory"
// backend.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]*GraphRecord
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]*GraphRecord)}
}

func (s *MemoryStore) Put(ctx context.Context, rec *GraphRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *rec
	s.graphs[rec.ID] = &clone
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*GraphRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.graphs[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.graphs, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*GraphRecord, error) {
	var list []*GraphRecord
	err := s.Scan(ctx, func(r *GraphRecord) error {
		list = append(list, r)
		return nil
	})
	return list, err
}

func (s *MemoryStore) Scan(ctx context.Context, fn func(*GraphRecord) error) error {
	s.mu.RLock()
	ids := make([]string, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		rec, err := s.Get(ctx, id)
		if err != nil {
			// Deleted between snapshot and read.
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// Ensure interface compliance at compile time.
var _ Store = (*MemoryStore)(nil)
