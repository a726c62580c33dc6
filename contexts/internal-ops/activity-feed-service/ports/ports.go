package ports

import (
	"context"
	"time"

	"conductor/contexts/internal-ops/activity-feed-service/domain/entities"
)

// EntryFilter scopes feed reads. Entries come back newest first.
type EntryFilter struct {
	EntityType string
	ActorID    string
	Limit      int
	Offset     int
}

type EntryRepository interface {
	AppendEntry(ctx context.Context, entry entities.Entry) error
	ListEntries(ctx context.Context, filter EntryFilter) ([]entities.Entry, int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
