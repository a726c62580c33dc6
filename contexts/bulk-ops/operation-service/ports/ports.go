package ports

import (
	"context"
	"time"
)

// Action is the closed set of bulk actions the runner executes.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionDelete   Action = "delete"
	ActionSuspend  Action = "suspend"
	ActionActivate Action = "activate"
)

// ActionApplier executes one action against one entity and returns a
// human-readable label for the processed item. Wired per entity type at the
// composition root (catalog and identity back it).
type ActionApplier interface {
	Apply(ctx context.Context, entityType string, action Action, id string, payload map[string]string) (string, error)
}

// OperationRecord is the persisted audit row of one bulk operation.
type OperationRecord struct {
	OperationID string
	EntityType  string
	Action      Action
	ActorID     string
	Total       int
	Processed   int
	Status      string // running, completed, failed
	FailedItem  string
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}

const (
	OperationRunning   = "running"
	OperationCompleted = "completed"
	OperationFailed    = "failed"
)

// Repository persists operation audit rows.
type Repository interface {
	SaveOperation(ctx context.Context, record OperationRecord) error
	ListRecentOperations(ctx context.Context, limit int) ([]OperationRecord, error)
}

// ActivityPublisher records finished operations on the activity feed.
type ActivityPublisher interface {
	PublishOperation(ctx context.Context, record OperationRecord) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
