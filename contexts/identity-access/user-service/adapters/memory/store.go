package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"conductor/contexts/identity-access/user-service/domain/entities"
	domainerrors "conductor/contexts/identity-access/user-service/domain/errors"
	"conductor/contexts/identity-access/user-service/ports"
)

type StatusChange struct {
	User     entities.User
	Previous entities.Status
}

type Store struct {
	mu      sync.Mutex
	users   map[string]entities.User
	changes []StatusChange
	nextID  int
	now     time.Time
}

func NewStore() *Store {
	return &Store{
		users: map[string]entities.User{},
		now:   time.Now().UTC(),
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) UpdateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return domainerrors.ErrUserNotFound
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context, filter ports.UserListFilter) ([]entities.User, int, error) {
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

func (s *Store) ListUserIDs(_ context.Context, filter ports.UserListFilter) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.matchedLocked(filter)
	ids := make([]string, 0, len(matched))
	for _, user := range matched {
		ids = append(ids, user.UserID)
	}
	return ids, nil
}

func (s *Store) matchedLocked(filter ports.UserListFilter) []entities.User {
	out := make([]entities.User, 0, len(s.users))
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, user := range s.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(user.DisplayName), search) &&
			!strings.Contains(user.Email, search) {
			continue
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Store) PublishUserStatusChange(_ context.Context, user entities.User, previous entities.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, StatusChange{User: user, Previous: previous})
	return nil
}

// StatusChanges returns what was published, for assertions.
func (s *Store) StatusChanges() []StatusChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StatusChange, len(s.changes))
	copy(out, s.changes)
	return out
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
	return fmt.Sprintf("user_%d", s.nextID), nil
}
