package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/philippgille/chromem-go"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

const documentCollection = "documents"

// Records carry a fixed unit vector: similarity ranking runs in the
// similarity engine over section text, not in the vector index, so the
// collection is used purely as an embedded key/value store.
var recordEmbedding = []float32{1}

// ChromemStore is a DocumentStore backed by a chromem-go persistent
// database. Each document is stored as a single record whose content is
// the JSON-encoded section list, keyed by document id.
type ChromemStore struct {
	mu         sync.RWMutex
	collection *chromem.Collection
}

func NewChromemStore(path string) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", types.ErrStorageUnavailable, path, err)
	}
	collection, err := db.GetOrCreateCollection(documentCollection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: collection %s: %v", types.ErrStorageUnavailable, documentCollection, err)
	}
	return &ChromemStore{collection: collection}, nil
}

func (s *ChromemStore) Put(ctx context.Context, doc *types.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", types.ErrStorageUnavailable, doc.ID, err)
	}

	// Replace-then-add under the write lock so concurrent Puts on the
	// same id resolve last-writer-wins and readers never observe the id
	// transiently absent mid-overwrite.
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.collection.Delete(ctx, nil, nil, doc.ID); err != nil {
		return fmt.Errorf("%w: replace %s: %v", types.ErrStorageUnavailable, doc.ID, err)
	}
	err = s.collection.AddDocument(ctx, chromem.Document{
		ID:      doc.ID,
		Content: string(payload),
		Metadata: map[string]string{
			"title":    doc.Title,
			"sections": strconv.Itoa(len(doc.Sections)),
		},
		Embedding: recordEmbedding,
	})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", types.ErrStorageUnavailable, doc.ID, err)
	}
	return nil
}

func (s *ChromemStore) Get(ctx context.Context, id string) (*types.Document, error) {
	s.mu.RLock()
	record, err := s.collection.GetByID(ctx, id)
	s.mu.RUnlock()
	if err != nil {
		return nil, types.ErrNotFound
	}
	var doc types.Document
	if err := json.Unmarshal([]byte(record.Content), &doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", types.ErrStorageUnavailable, id, err)
	}
	return &doc, nil
}

func (s *ChromemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.collection.Delete(ctx, nil, nil, id); err != nil {
		return fmt.Errorf("%w: delete %s: %v", types.ErrStorageUnavailable, id, err)
	}
	return nil
}
