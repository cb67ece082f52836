package database

import (
	"context"
	"sync"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

// MemoryStore is an in-memory DocumentStore used in tests and for
// ephemeral deployments. Documents are deep-copied on both write and
// read so no live references cross the store boundary.
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]*types.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]*types.Document),
	}
}

func (s *MemoryStore) Put(ctx context.Context, doc *types.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*types.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, types.ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	return nil
}
