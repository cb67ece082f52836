package database

import (
	"context"

	"github.com/developer4fun/Knowledge-Explorer/types"
)

// DocumentStore is the local, per-device persistence layer for parsed
// documents, keyed by document id. Implementations must be safe for
// concurrent use and must never let a reader observe a half-written
// record; concurrent puts on the same id resolve last-writer-wins.
type DocumentStore interface {
	// Put is an idempotent upsert keyed by doc.ID. It returns
	// types.ErrStorageUnavailable if the backend cannot be written.
	Put(ctx context.Context, doc *types.Document) error

	// Get returns the stored document or types.ErrNotFound.
	Get(ctx context.Context, id string) (*types.Document, error)

	// Delete removes a document. A missing id is a no-op, not an error.
	Delete(ctx context.Context, id string) error
}
