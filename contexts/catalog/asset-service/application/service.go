package application

import (
	"context"
	"log/slog"
	"strings"

	"conductor/contexts/catalog/asset-service/domain/entities"
	domainerrors "conductor/contexts/catalog/asset-service/domain/errors"
	"conductor/contexts/catalog/asset-service/ports"
)

type Service struct {
	Assets      ports.AssetRepository
	Collections ports.CollectionRepository
	Clock       ports.Clock
	IDs         ports.IDGenerator
	Logger      *slog.Logger
}

type CreateAssetInput struct {
	Title         string
	Description   string
	ContributorID string
	Category      entities.Category
	Details       entities.Details
	InitialState  string
}

func (s Service) CreateAsset(ctx context.Context, input CreateAssetInput) (entities.Asset, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.ContributorID = strings.TrimSpace(input.ContributorID)
	if input.Title == "" || input.ContributorID == "" {
		return entities.Asset{}, domainerrors.ErrInvalidRequest
	}
	if !entities.ValidCategory(input.Category) {
		return entities.Asset{}, domainerrors.ErrInvalidCategory
	}
	if input.Details != nil && input.Details.Category() != input.Category {
		return entities.Asset{}, domainerrors.ErrDetailsMismatch
	}

	assetID, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.Asset{}, err
	}
	now := s.Clock.Now().UTC()
	state := strings.TrimSpace(input.InitialState)
	if state == "" {
		state = "draft"
	}
	asset := entities.Asset{
		AssetID:       assetID,
		Title:         input.Title,
		Description:   strings.TrimSpace(input.Description),
		ContributorID: input.ContributorID,
		Category:      input.Category,
		Details:       input.Details,
		WorkflowState: state,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Assets.CreateAsset(ctx, asset); err != nil {
		return entities.Asset{}, err
	}
	return asset, nil
}

func (s Service) GetAsset(ctx context.Context, assetID string) (entities.Asset, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return entities.Asset{}, domainerrors.ErrInvalidRequest
	}
	return s.Assets.GetAsset(ctx, assetID)
}

type UpdateAssetInput struct {
	AssetID     string
	Title       string
	Description string
	Details     entities.Details
}

func (s Service) UpdateAsset(ctx context.Context, input UpdateAssetInput) (entities.Asset, error) {
	asset, err := s.Assets.GetAsset(ctx, strings.TrimSpace(input.AssetID))
	if err != nil {
		return entities.Asset{}, err
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		asset.Title = title
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		asset.Description = description
	}
	if input.Details != nil {
		if input.Details.Category() != asset.Category {
			return entities.Asset{}, domainerrors.ErrDetailsMismatch
		}
		asset.Details = input.Details
	}
	asset.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Assets.UpdateAsset(ctx, asset); err != nil {
		return entities.Asset{}, err
	}
	return asset, nil
}

func (s Service) DeleteAsset(ctx context.Context, assetID string) error {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return domainerrors.ErrInvalidRequest
	}
	return s.Assets.DeleteAsset(ctx, assetID)
}

func (s Service) ListAssets(ctx context.Context, filter ports.AssetListFilter) ([]entities.Asset, int, error) {
	if filter.Category != "" && !entities.ValidCategory(filter.Category) {
		return nil, 0, domainerrors.ErrInvalidCategory
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.Assets.ListAssets(ctx, filter)
}

// ListAssetIDs serves the companion endpoint bulk range-select and
// select-all depend on: every matching ID, in the same stable order the
// list pages walk.
func (s Service) ListAssetIDs(ctx context.Context, filter ports.AssetListFilter) ([]string, error) {
	if filter.Category != "" && !entities.ValidCategory(filter.Category) {
		return nil, domainerrors.ErrInvalidCategory
	}
	return s.Assets.ListAssetIDs(ctx, filter)
}

type CreateCollectionInput struct {
	Name        string
	Description string
	CuratorID   string
}

func (s Service) CreateCollection(ctx context.Context, input CreateCollectionInput) (entities.Collection, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return entities.Collection{}, domainerrors.ErrInvalidRequest
	}
	collectionID, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.Collection{}, err
	}
	now := s.Clock.Now().UTC()
	collection := entities.Collection{
		CollectionID: collectionID,
		Name:         input.Name,
		Description:  strings.TrimSpace(input.Description),
		CuratorID:    strings.TrimSpace(input.CuratorID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Collections.CreateCollection(ctx, collection); err != nil {
		return entities.Collection{}, err
	}
	return collection, nil
}

func (s Service) ListCollections(ctx context.Context) ([]entities.Collection, error) {
	return s.Collections.ListCollections(ctx)
}

func (s Service) AssignAssetToCollection(ctx context.Context, assetID, collectionID string) error {
	assetID = strings.TrimSpace(assetID)
	collectionID = strings.TrimSpace(collectionID)
	if assetID == "" || collectionID == "" {
		return domainerrors.ErrInvalidRequest
	}
	if _, err := s.Collections.GetCollection(ctx, collectionID); err != nil {
		return err
	}
	return s.Collections.AssignAssetToCollection(ctx, assetID, collectionID)
}

// RemoveAssetFromCollection clears the membership. Assigning the empty
// collection id is how the repository models "no collection".
func (s Service) RemoveAssetFromCollection(ctx context.Context, assetID string) error {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return domainerrors.ErrInvalidRequest
	}
	return s.Collections.AssignAssetToCollection(ctx, assetID, "")
}
