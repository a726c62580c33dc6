package outbox

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// PostgresStore persists outbox rows in the service database so enqueue can
// share a transaction with the state change.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Enqueue(ctx context.Context, message Message) error {
	if message.Status == "" {
		message.Status = StatusPending
	}
	row := outboxModel{
		OutboxID:   message.ID,
		EventType:  message.EventType,
		Payload:    message.Payload,
		Status:     message.Status,
		RetryCount: message.RetryCount,
		CreatedAt:  message.CreatedAt.UTC(),
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

func (s *PostgresStore) ListPending(ctx context.Context, limit int) ([]Message, error) {
	var rows []outboxModel
	err := s.db.WithContext(ctx).
		Where("status = ? AND retry_count < ?", StatusPending, maxRetries).
		Order("created_at ASC, outbox_id ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	messages := make([]Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, Message{
			ID:         row.OutboxID,
			EventType:  row.EventType,
			Payload:    row.Payload,
			Status:     row.Status,
			RetryCount: row.RetryCount,
			CreatedAt:  row.CreatedAt.UTC(),
		})
	}
	return messages, nil
}

func (s *PostgresStore) MarkPublished(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", id).
		Update("status", StatusPublished).
		Error
}

func (s *PostgresStore) MarkFailed(ctx context.Context, id string, retryCount int) error {
	status := StatusPending
	if retryCount >= maxRetries {
		status = StatusFailed
	}
	return s.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"retry_count": retryCount,
		}).
		Error
}

type outboxModel struct {
	OutboxID   string    `gorm:"column:outbox_id;primaryKey"`
	EventType  string    `gorm:"column:event_type"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	Status     string    `gorm:"column:status;index"`
	RetryCount int       `gorm:"column:retry_count"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (outboxModel) TableName() string {
	return "outbox_messages"
}
