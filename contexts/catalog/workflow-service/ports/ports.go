package ports

import (
	"context"
	"time"

	"conductor/contexts/catalog/workflow-service/domain/workflow"
)

// AssetRef is the slice of catalog state this context needs to run a
// decision: the discriminator picking the table and the current state.
type AssetRef struct {
	AssetID  string
	Title    string
	Category workflow.Category
	State    workflow.State
}

// HistoryItem is one transition actually taken. Rows are append-only.
type HistoryItem struct {
	HistoryID    string
	AssetID      string
	ReviewerID   string
	ReviewerName string
	Action       workflow.Action
	FromState    workflow.State
	ToState      workflow.State
	Checklist    []string
	Comments     string
	CreatedAt    time.Time
}

// AssetStateStore reads and advances the authoritative asset state. The
// catalog owns the rows; this port is wired to it at the composition root.
type AssetStateStore interface {
	GetAssetRef(ctx context.Context, assetID string) (AssetRef, error)
	SetAssetState(ctx context.Context, assetID string, state workflow.State) error
}

// Repository persists workflow history.
type Repository interface {
	AppendHistory(ctx context.Context, item HistoryItem) error
	ListHistory(ctx context.Context, assetID string) ([]HistoryItem, error)
}

// ActivityPublisher records a decision on the system-wide activity feed.
type ActivityPublisher interface {
	PublishDecision(ctx context.Context, item HistoryItem) error
}

type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	ResponseBody []byte
	ExpiresAt    time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, key string, responseBody []byte, at time.Time) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
