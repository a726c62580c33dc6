package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"conductor/contexts/catalog/workflow-service/domain/workflow"
	"conductor/contexts/catalog/workflow-service/ports"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) AppendHistory(ctx context.Context, item ports.HistoryItem) error {
	row := historyModelFromItem(item)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListHistory(ctx context.Context, assetID string) ([]ports.HistoryItem, error) {
	var rows []historyModel
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at ASC, history_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]ports.HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toItem())
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (*ports.IdempotencyRecord, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ? AND expires_at > ?", key, now).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ports.IdempotencyRecord{
		Key:          row.IdempotencyKey,
		RequestHash:  row.RequestHash,
		ResponseBody: row.ResponseBody,
		ExpiresAt:    row.ExpiresAt.UTC(),
	}, nil
}

func (r *Repository) Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error {
	row := idempotencyModel{
		IdempotencyKey: key,
		RequestHash:    requestHash,
		ExpiresAt:      expiresAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) Complete(ctx context.Context, key string, responseBody []byte, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&idempotencyModel{}).
		Where("idempotency_key = ?", key).
		Updates(map[string]any{
			"response_body": responseBody,
			"completed_at":  at.UTC(),
		}).
		Error
}

type historyModel struct {
	HistoryID    string    `gorm:"column:history_id;primaryKey"`
	AssetID      string    `gorm:"column:asset_id;index"`
	ReviewerID   string    `gorm:"column:reviewer_id"`
	ReviewerName string    `gorm:"column:reviewer_name"`
	Action       string    `gorm:"column:action"`
	FromState    string    `gorm:"column:from_state"`
	ToState      string    `gorm:"column:to_state"`
	Checklist    string    `gorm:"column:checklist"`
	Comments     string    `gorm:"column:comments"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (historyModel) TableName() string {
	return "workflow_history"
}

func historyModelFromItem(item ports.HistoryItem) historyModel {
	return historyModel{
		HistoryID:    item.HistoryID,
		AssetID:      item.AssetID,
		ReviewerID:   item.ReviewerID,
		ReviewerName: item.ReviewerName,
		Action:       string(item.Action),
		FromState:    string(item.FromState),
		ToState:      string(item.ToState),
		Checklist:    strings.Join(item.Checklist, "\n"),
		Comments:     item.Comments,
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func (m historyModel) toItem() ports.HistoryItem {
	var checklist []string
	if m.Checklist != "" {
		checklist = strings.Split(m.Checklist, "\n")
	}
	return ports.HistoryItem{
		HistoryID:    m.HistoryID,
		AssetID:      m.AssetID,
		ReviewerID:   m.ReviewerID,
		ReviewerName: m.ReviewerName,
		Action:       workflow.Action(m.Action),
		FromState:    workflow.State(m.FromState),
		ToState:      workflow.State(m.ToState),
		Checklist:    checklist,
		Comments:     m.Comments,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type idempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	ResponseBody   []byte    `gorm:"column:response_body"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CompletedAt    time.Time `gorm:"column:completed_at"`
}

func (idempotencyModel) TableName() string {
	return "workflow_idempotency"
}
