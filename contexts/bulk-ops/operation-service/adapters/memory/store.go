package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	domainerrors "conductor/contexts/bulk-ops/operation-service/domain/errors"
	"conductor/contexts/bulk-ops/operation-service/ports"
)

// Store backs every operation-service port in memory. Apply succeeds
// against seeded items and can be primed to fail on a specific ID.
type Store struct {
	mu         sync.Mutex
	labels     map[string]string
	failOn     string
	failErr    error
	applied    []string
	operations map[string]ports.OperationRecord
	order      []string
	activity   []ports.OperationRecord
	nextID     int
	now        time.Time
}

func NewStore() *Store {
	return &Store{
		labels:     map[string]string{},
		operations: map[string]ports.OperationRecord{},
		now:        time.Now().UTC(),
	}
}

// SeedItem registers an entity the applier will accept.
func (s *Store) SeedItem(id, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[id] = label
}

// FailOn primes the applier to fail when it reaches id.
func (s *Store) FailOn(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn = id
	s.failErr = err
}

func (s *Store) Apply(_ context.Context, _ string, _ ports.Action, id string, _ map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn == id {
		return s.labels[id], s.failErr
	}
	label, ok := s.labels[id]
	if !ok {
		return "", domainerrors.ErrItemNotFound
	}
	s.applied = append(s.applied, id)
	return label, nil
}

// Applied lists the IDs processed successfully, in order.
func (s *Store) Applied() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.applied)
}

func (s *Store) SaveOperation(_ context.Context, record ports.OperationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.operations[record.OperationID]; !ok {
		s.order = append(s.order, record.OperationID)
	}
	s.operations[record.OperationID] = record
	return nil
}

func (s *Store) ListRecentOperations(_ context.Context, limit int) ([]ports.OperationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.OperationRecord, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.operations[s.order[i]])
	}
	return out, nil
}

func (s *Store) PublishOperation(_ context.Context, record ports.OperationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, record)
	return nil
}

// PublishedOperations exposes activity publications for assertions.
func (s *Store) PublishedOperations() []ports.OperationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.activity)
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(100 * time.Millisecond)
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return fmt.Sprintf("op_%d", s.nextID), nil
}
