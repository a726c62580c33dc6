package http

import (
	"context"
	"time"

	"conductor/contexts/catalog/asset-service/application"
	"conductor/contexts/catalog/asset-service/domain/entities"
	domainerrors "conductor/contexts/catalog/asset-service/domain/errors"
	"conductor/contexts/catalog/asset-service/ports"
	httptransport "conductor/contexts/catalog/asset-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) CreateAssetHandler(ctx context.Context, req httptransport.CreateAssetRequest) (httptransport.AssetResponse, error) {
	category := entities.Category(req.Category)
	if !entities.ValidCategory(category) {
		return httptransport.AssetResponse{}, domainerrors.ErrInvalidCategory
	}
	details, err := httptransport.DecodeDetails(category, req.Details)
	if err != nil {
		return httptransport.AssetResponse{}, domainerrors.ErrInvalidRequest
	}
	asset, err := h.Service.CreateAsset(ctx, application.CreateAssetInput{
		Title:         req.Title,
		Description:   req.Description,
		ContributorID: req.ContributorID,
		Category:      category,
		Details:       details,
		InitialState:  req.InitialState,
	})
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return assetResponse(asset)
}

func (h Handler) GetAssetHandler(ctx context.Context, assetID string) (httptransport.AssetResponse, error) {
	asset, err := h.Service.GetAsset(ctx, assetID)
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return assetResponse(asset)
}

func (h Handler) UpdateAssetHandler(ctx context.Context, assetID string, req httptransport.UpdateAssetRequest) (httptransport.AssetResponse, error) {
	var details entities.Details
	if len(req.Details) > 0 {
		existing, err := h.Service.GetAsset(ctx, assetID)
		if err != nil {
			return httptransport.AssetResponse{}, err
		}
		details, err = httptransport.DecodeDetails(existing.Category, req.Details)
		if err != nil {
			return httptransport.AssetResponse{}, domainerrors.ErrInvalidRequest
		}
	}
	asset, err := h.Service.UpdateAsset(ctx, application.UpdateAssetInput{
		AssetID:     assetID,
		Title:       req.Title,
		Description: req.Description,
		Details:     details,
	})
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return assetResponse(asset)
}

func (h Handler) DeleteAssetHandler(ctx context.Context, assetID string) error {
	return h.Service.DeleteAsset(ctx, assetID)
}

func (h Handler) ListAssetsHandler(ctx context.Context, filter ports.AssetListFilter) (httptransport.AssetListResponse, error) {
	assets, total, err := h.Service.ListAssets(ctx, filter)
	if err != nil {
		return httptransport.AssetListResponse{}, err
	}
	resp := httptransport.AssetListResponse{
		Items: make([]httptransport.AssetResponse, 0, len(assets)),
		Total: total,
	}
	for _, asset := range assets {
		item, err := assetResponse(asset)
		if err != nil {
			return httptransport.AssetListResponse{}, err
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}

func (h Handler) ListAssetIDsHandler(ctx context.Context, filter ports.AssetListFilter) (httptransport.AssetIDListResponse, error) {
	ids, err := h.Service.ListAssetIDs(ctx, filter)
	if err != nil {
		return httptransport.AssetIDListResponse{}, err
	}
	return httptransport.AssetIDListResponse{IDs: ids}, nil
}

func (h Handler) CreateCollectionHandler(ctx context.Context, req httptransport.CreateCollectionRequest) (httptransport.CollectionResponse, error) {
	collection, err := h.Service.CreateCollection(ctx, application.CreateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		CuratorID:   req.CuratorID,
	})
	if err != nil {
		return httptransport.CollectionResponse{}, err
	}
	return collectionResponse(collection), nil
}

func (h Handler) ListCollectionsHandler(ctx context.Context) (httptransport.CollectionListResponse, error) {
	collections, err := h.Service.ListCollections(ctx)
	if err != nil {
		return httptransport.CollectionListResponse{}, err
	}
	resp := httptransport.CollectionListResponse{Items: make([]httptransport.CollectionResponse, 0, len(collections))}
	for _, collection := range collections {
		resp.Items = append(resp.Items, collectionResponse(collection))
	}
	return resp, nil
}

func (h Handler) AssignCollectionHandler(ctx context.Context, assetID string, req httptransport.AssignCollectionRequest) error {
	return h.Service.AssignAssetToCollection(ctx, assetID, req.CollectionID)
}

func (h Handler) RemoveCollectionHandler(ctx context.Context, assetID string) error {
	return h.Service.RemoveAssetFromCollection(ctx, assetID)
}

func assetResponse(asset entities.Asset) (httptransport.AssetResponse, error) {
	details, err := httptransport.EncodeDetails(asset.Details)
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return httptransport.AssetResponse{
		AssetID:       asset.AssetID,
		Title:         asset.Title,
		Description:   asset.Description,
		ContributorID: asset.ContributorID,
		Category:      string(asset.Category),
		Details:       details,
		WorkflowState: asset.WorkflowState,
		CollectionID:  asset.CollectionID,
		CreatedAt:     asset.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     asset.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func collectionResponse(collection entities.Collection) httptransport.CollectionResponse {
	return httptransport.CollectionResponse{
		CollectionID: collection.CollectionID,
		Name:         collection.Name,
		Description:  collection.Description,
		CuratorID:    collection.CuratorID,
		CreatedAt:    collection.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    collection.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
