package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	domainerrors "conductor/contexts/catalog/workflow-service/domain/errors"
	"conductor/contexts/catalog/workflow-service/domain/workflow"
	"conductor/contexts/catalog/workflow-service/ports"
)

// Store implements every workflow port in memory for tests and local runs.
type Store struct {
	mu          sync.Mutex
	assets      map[string]ports.AssetRef
	history     map[string][]ports.HistoryItem
	activity    []ports.HistoryItem
	idempotency map[string]ports.IdempotencyRecord
	nextID      int
	now         time.Time
}

func NewStore() *Store {
	return &Store{
		assets:      map[string]ports.AssetRef{},
		history:     map[string][]ports.HistoryItem{},
		idempotency: map[string]ports.IdempotencyRecord{},
		now:         time.Now().UTC(),
	}
}

// SeedAsset registers a catalog row for decision tests.
func (s *Store) SeedAsset(ref ports.AssetRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[ref.AssetID] = ref
}

func (s *Store) GetAssetRef(_ context.Context, assetID string) (ports.AssetRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.assets[assetID]
	if !ok {
		return ports.AssetRef{}, domainerrors.ErrAssetNotFound
	}
	return ref, nil
}

func (s *Store) SetAssetState(_ context.Context, assetID string, state workflow.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.assets[assetID]
	if !ok {
		return domainerrors.ErrAssetNotFound
	}
	ref.State = state
	s.assets[assetID] = ref
	return nil
}

func (s *Store) AppendHistory(_ context.Context, item ports.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[item.AssetID] = append(s.history[item.AssetID], item)
	return nil
}

func (s *Store) ListHistory(_ context.Context, assetID string) ([]ports.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history[assetID]), nil
}

func (s *Store) PublishDecision(_ context.Context, item ports.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, item)
	return nil
}

// PublishedDecisions exposes recorded activity for assertions.
func (s *Store) PublishedDecisions() []ports.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activity)
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.idempotency[key]
	if !ok {
		return nil, nil
	}
	if now.After(row.ExpiresAt) {
		delete(s.idempotency, key)
		return nil, nil
	}
	clone := row
	clone.ResponseBody = slices.Clone(row.ResponseBody)
	return &clone, nil
}

func (s *Store) Reserve(_ context.Context, key, requestHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.idempotency[key]; ok {
		if row.RequestHash != requestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	s.idempotency[key] = ports.IdempotencyRecord{Key: key, RequestHash: requestHash, ExpiresAt: expiresAt}
	return nil
}

func (s *Store) Complete(_ context.Context, key string, responseBody []byte, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.idempotency[key]
	if !ok {
		return nil
	}
	row.ResponseBody = slices.Clone(responseBody)
	if at.After(row.ExpiresAt) {
		row.ExpiresAt = at.Add(7 * 24 * time.Hour)
	}
	s.idempotency[key] = row
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return fmt.Sprintf("hist_%d", s.nextID), nil
}
