package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"conductor/contexts/internal-ops/activity-feed-service/domain/entities"
	"conductor/contexts/internal-ops/activity-feed-service/ports"
)

type Store struct {
	mu      sync.Mutex
	entries []entities.Entry
	nextID  int
	now     time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now().UTC()}
}

func (s *Store) AppendEntry(_ context.Context, entry entities.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) ListEntries(_ context.Context, filter ports.EntryFilter) ([]entities.Entry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entities.Entry, 0, len(s.entries))
	// Newest first: walk the append order backwards.
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		if filter.ActorID != "" && entry.ActorID != filter.ActorID {
			continue
		}
		matched = append(matched, entry)
	}
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
	return fmt.Sprintf("entry_%d", s.nextID), nil
}
