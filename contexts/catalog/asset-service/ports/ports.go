package ports

import (
	"context"
	"time"

	"conductor/contexts/catalog/asset-service/domain/entities"
)

// AssetListFilter scopes list, count and ordered-ID queries. Pagination
// applies to List only; ListIDs always returns the complete matching set in
// stable (created_at, asset_id) order.
type AssetListFilter struct {
	Category      entities.Category
	WorkflowState string
	ContributorID string
	CollectionID  string
	Search        string
	Limit         int
	Offset        int
}

type AssetRepository interface {
	CreateAsset(ctx context.Context, asset entities.Asset) error
	GetAsset(ctx context.Context, assetID string) (entities.Asset, error)
	UpdateAsset(ctx context.Context, asset entities.Asset) error
	DeleteAsset(ctx context.Context, assetID string) error
	ListAssets(ctx context.Context, filter AssetListFilter) ([]entities.Asset, int, error)
	ListAssetIDs(ctx context.Context, filter AssetListFilter) ([]string, error)
	SetWorkflowState(ctx context.Context, assetID string, state string) error
}

type CollectionRepository interface {
	CreateCollection(ctx context.Context, collection entities.Collection) error
	GetCollection(ctx context.Context, collectionID string) (entities.Collection, error)
	ListCollections(ctx context.Context) ([]entities.Collection, error)
	AssignAssetToCollection(ctx context.Context, assetID, collectionID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
