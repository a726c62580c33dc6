package memory

import (
	"context"
	"slices"
	"sync"

	"conductor/contexts/bulk-ops/selection-service/domain/selection"
)

// Store keeps selection blobs and a fake filtered-ID directory in memory.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
	ids   map[string][]string
	calls map[string]int
}

func NewStore() *Store {
	return &Store{
		blobs: map[string][]byte{},
		ids:   map[string][]string{},
		calls: map[string]int{},
	}
}

func (s *Store) Get(_ context.Context, sessionID string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[sessionID]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(blob), true, nil
}

func (s *Store) Put(_ context.Context, sessionID string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[sessionID] = slices.Clone(blob)
	return nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, sessionID)
	return nil
}

// Corrupt overwrites a stored blob for deserialization-fallback tests.
func (s *Store) Corrupt(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[sessionID] = []byte("{broken")
}

// SeedIDs registers the ordered ID list served for a filter context.
func (s *Store) SeedIDs(selCtx selection.Context, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[selCtx.Key()] = slices.Clone(ids)
}

func (s *Store) ListIDs(_ context.Context, selCtx selection.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[selCtx.Key()]++
	return slices.Clone(s.ids[selCtx.Key()]), nil
}

func (s *Store) CountFiltered(_ context.Context, selCtx selection.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids[selCtx.Key()]), nil
}

// ListCalls reports how often the ordered-ID list was fetched for a context,
// exposing the cache behavior to tests.
func (s *Store) ListCalls(selCtx selection.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[selCtx.Key()]
}
