package ports

import (
	"context"

	"conductor/contexts/bulk-ops/selection-service/domain/selection"
)

// SelectionStore persists one serialized selection blob per browsing
// session. Any durable key-value substrate works; the engine only needs
// get/set/delete of a single blob.
type SelectionStore interface {
	Get(ctx context.Context, sessionID string) ([]byte, bool, error)
	Put(ctx context.Context, sessionID string, blob []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// EntityIDLister resolves the complete, stably ordered ID list (and total)
// matching a filter context. Wired to the catalog and identity list layers
// at the composition root; range-select and select-all depend on it.
type EntityIDLister interface {
	ListIDs(ctx context.Context, selCtx selection.Context) ([]string, error)
	CountFiltered(ctx context.Context, selCtx selection.Context) (int, error)
}
