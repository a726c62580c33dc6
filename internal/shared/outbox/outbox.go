package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"conductor/internal/shared/events"
)

// Message is one outbox row, persisted alongside the state change that
// produced it. The worker relay drains pending rows onto the bus.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
	CreatedAt  time.Time
}

const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

const maxRetries = 5

type Store interface {
	Enqueue(ctx context.Context, message Message) error
	ListPending(ctx context.Context, limit int) ([]Message, error)
	MarkPublished(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, retryCount int) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

// Relay drains pending messages to the bus. One pass per tick; callers own
// the ticker loop.
type Relay struct {
	Store     Store
	Publisher Publisher
	Topic     string
	BatchSize int
	Logger    *slog.Logger
}

func (r Relay) RunOnce(ctx context.Context) error {
	batch := r.BatchSize
	if batch <= 0 {
		batch = 50
	}
	messages, err := r.Store.ListPending(ctx, batch)
	if err != nil {
		return err
	}
	for _, message := range messages {
		var envelope events.Envelope
		if err := json.Unmarshal(message.Payload, &envelope); err != nil {
			r.logger().Error("dropping undecodable outbox message",
				"event", "outbox_decode_failed",
				"module", "internal/shared/outbox",
				"layer", "platform",
				"outbox_id", message.ID,
				"error", err.Error())
			if err := r.Store.MarkFailed(ctx, message.ID, maxRetries); err != nil {
				return err
			}
			continue
		}
		if err := r.Publisher.Publish(ctx, r.Topic, envelope); err != nil {
			retry := message.RetryCount + 1
			if err := r.Store.MarkFailed(ctx, message.ID, retry); err != nil {
				return err
			}
			continue
		}
		if err := r.Store.MarkPublished(ctx, message.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r Relay) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// MemoryStore keeps outbox rows in process, for tests and the in-memory
// composition.
type MemoryStore struct {
	mu       sync.Mutex
	messages map[string]Message
	order    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: map[string]Message{}}
}

func (s *MemoryStore) Enqueue(_ context.Context, message Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message.ID == "" {
		return errors.New("outbox message id is required")
	}
	if message.Status == "" {
		message.Status = StatusPending
	}
	if _, ok := s.messages[message.ID]; !ok {
		s.order = append(s.order, message.ID)
	}
	s.messages[message.ID] = message
	return nil
}

func (s *MemoryStore) ListPending(_ context.Context, limit int) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, 0, limit)
	for _, id := range s.order {
		message := s.messages[id]
		if message.Status != StatusPending || message.RetryCount >= maxRetries {
			continue
		}
		out = append(out, message)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkPublished(_ context.Context, id string) error {
	return s.setStatus(id, StatusPublished, 0)
}

func (s *MemoryStore) MarkFailed(_ context.Context, id string, retryCount int) error {
	status := StatusPending
	if retryCount >= maxRetries {
		status = StatusFailed
	}
	return s.setStatus(id, status, retryCount)
}

func (s *MemoryStore) setStatus(id, status string, retryCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	message, ok := s.messages[id]
	if !ok {
		return errors.New("outbox message not found")
	}
	message.Status = status
	message.RetryCount = retryCount
	s.messages[id] = message
	return nil
}
