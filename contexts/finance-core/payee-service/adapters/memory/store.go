package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"conductor/contexts/finance-core/payee-service/domain/entities"
	domainerrors "conductor/contexts/finance-core/payee-service/domain/errors"
)

type Store struct {
	mu     sync.Mutex
	splits map[string]entities.Split
	nextID int
	now    time.Time
}

func NewStore() *Store {
	return &Store{
		splits: map[string]entities.Split{},
		now:    time.Now().UTC(),
	}
}

func (s *Store) CreateSplit(_ context.Context, split entities.Split) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.splits[split.SplitID] = split
	return nil
}

func (s *Store) GetSplit(_ context.Context, splitID string) (entities.Split, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	split, ok := s.splits[splitID]
	if !ok {
		return entities.Split{}, domainerrors.ErrSplitNotFound
	}
	return split, nil
}

func (s *Store) UpdateSplit(_ context.Context, split entities.Split) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.splits[split.SplitID]; !ok {
		return domainerrors.ErrSplitNotFound
	}
	s.splits[split.SplitID] = split
	return nil
}

func (s *Store) ListByContributor(_ context.Context, contributorID string) ([]entities.Split, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Split, 0)
	for _, split := range s.splits {
		if split.ContributorID == contributorID {
			out = append(out, split)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].SplitID < out[j].SplitID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
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
	return fmt.Sprintf("split_%d", s.nextID), nil
}
