package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"conductor/contexts/catalog/asset-service/domain/entities"
	domainerrors "conductor/contexts/catalog/asset-service/domain/errors"
	"conductor/contexts/catalog/asset-service/ports"
)

type Store struct {
	mu          sync.Mutex
	assets      map[string]entities.Asset
	collections map[string]entities.Collection
	nextID      int
	now         time.Time
}

func NewStore() *Store {
	return &Store{
		assets:      map[string]entities.Asset{},
		collections: map[string]entities.Collection{},
		now:         time.Now().UTC(),
	}
}

func (s *Store) CreateAsset(_ context.Context, asset entities.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.AssetID] = asset
	return nil
}

func (s *Store) GetAsset(_ context.Context, assetID string) (entities.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return entities.Asset{}, domainerrors.ErrAssetNotFound
	}
	return asset, nil
}

func (s *Store) UpdateAsset(_ context.Context, asset entities.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[asset.AssetID]; !ok {
		return domainerrors.ErrAssetNotFound
	}
	s.assets[asset.AssetID] = asset
	return nil
}

func (s *Store) DeleteAsset(_ context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[assetID]; !ok {
		return domainerrors.ErrAssetNotFound
	}
	delete(s.assets, assetID)
	return nil
}

func (s *Store) ListAssets(_ context.Context, filter ports.AssetListFilter) ([]entities.Asset, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.matchedLocked(filter)
	total := len(matched)

	offset := filter.Offset
	if offset > total {
		offset = total
	}
	end := offset + filter.Limit
	if filter.Limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *Store) ListAssetIDs(_ context.Context, filter ports.AssetListFilter) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.matchedLocked(filter)
	ids := make([]string, 0, len(matched))
	for _, asset := range matched {
		ids = append(ids, asset.AssetID)
	}
	return ids, nil
}

func (s *Store) SetWorkflowState(_ context.Context, assetID string, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return domainerrors.ErrAssetNotFound
	}
	asset.WorkflowState = state
	asset.UpdatedAt = s.now
	s.assets[assetID] = asset
	return nil
}

// matchedLocked applies the filter and the stable (created_at, asset_id)
// ordering shared by pages and the bulk-ID endpoint.
func (s *Store) matchedLocked(filter ports.AssetListFilter) []entities.Asset {
	out := make([]entities.Asset, 0, len(s.assets))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, asset := range s.assets {
		if filter.Category != "" && asset.Category != filter.Category {
			continue
		}
		if filter.WorkflowState != "" && asset.WorkflowState != filter.WorkflowState {
			continue
		}
		if filter.ContributorID != "" && asset.ContributorID != filter.ContributorID {
			continue
		}
		if filter.CollectionID != "" && asset.CollectionID != filter.CollectionID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(asset.Title), search) {
			continue
		}
		out = append(out, asset)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].AssetID < out[j].AssetID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) CreateCollection(_ context.Context, collection entities.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection.CollectionID] = collection
	return nil
}

func (s *Store) GetCollection(_ context.Context, collectionID string) (entities.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	collection, ok := s.collections[collectionID]
	if !ok {
		return entities.Collection{}, domainerrors.ErrCollectionNotFound
	}
	return collection, nil
}

func (s *Store) ListCollections(_ context.Context) ([]entities.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Collection, 0, len(s.collections))
	for _, collection := range s.collections {
		out = append(out, collection)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CollectionID < out[j].CollectionID })
	return out, nil
}

func (s *Store) AssignAssetToCollection(_ context.Context, assetID, collectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, ok := s.assets[assetID]
	if !ok {
		return domainerrors.ErrAssetNotFound
	}
	asset.CollectionID = collectionID
	s.assets[assetID] = asset
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(time.Millisecond)
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return fmt.Sprintf("asset_%d", s.nextID), nil
}
