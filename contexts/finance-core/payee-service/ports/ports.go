package ports

import (
	"context"
	"time"

	"conductor/contexts/finance-core/payee-service/domain/entities"
)

type SplitRepository interface {
	CreateSplit(ctx context.Context, split entities.Split) error
	GetSplit(ctx context.Context, splitID string) (entities.Split, error)
	UpdateSplit(ctx context.Context, split entities.Split) error
	ListByContributor(ctx context.Context, contributorID string) ([]entities.Split, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
