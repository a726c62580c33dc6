package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"conductor/contexts/bulk-ops/operation-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

// SaveOperation upserts the audit row; the runner writes it once at start
// and once with the terminal status.
func (r *Repository) SaveOperation(ctx context.Context, record ports.OperationRecord) error {
	row := operationModelFromRecord(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "operation_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"processed", "status", "failed_item", "error", "finished_at",
			}),
		}).
		Create(&row).
		Error
}

func (r *Repository) ListRecentOperations(ctx context.Context, limit int) ([]ports.OperationRecord, error) {
	var rows []operationModel
	if err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	out := make([]ports.OperationRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

type operationModel struct {
	OperationID string    `gorm:"column:operation_id;primaryKey"`
	EntityType  string    `gorm:"column:entity_type"`
	Action      string    `gorm:"column:action"`
	ActorID     string    `gorm:"column:actor_id"`
	Total       int       `gorm:"column:total"`
	Processed   int       `gorm:"column:processed"`
	Status      string    `gorm:"column:status"`
	FailedItem  string    `gorm:"column:failed_item"`
	Error       string    `gorm:"column:error"`
	StartedAt   time.Time `gorm:"column:started_at"`
	FinishedAt  time.Time `gorm:"column:finished_at"`
}

func (operationModel) TableName() string {
	return "bulk_operations"
}

func operationModelFromRecord(record ports.OperationRecord) operationModel {
	return operationModel{
		OperationID: record.OperationID,
		EntityType:  record.EntityType,
		Action:      string(record.Action),
		ActorID:     record.ActorID,
		Total:       record.Total,
		Processed:   record.Processed,
		Status:      record.Status,
		FailedItem:  record.FailedItem,
		Error:       record.Error,
		StartedAt:   record.StartedAt.UTC(),
		FinishedAt:  record.FinishedAt.UTC(),
	}
}

func (m operationModel) toRecord() ports.OperationRecord {
	return ports.OperationRecord{
		OperationID: m.OperationID,
		EntityType:  m.EntityType,
		Action:      ports.Action(m.Action),
		ActorID:     m.ActorID,
		Total:       m.Total,
		Processed:   m.Processed,
		Status:      m.Status,
		FailedItem:  m.FailedItem,
		Error:       m.Error,
		StartedAt:   m.StartedAt.UTC(),
		FinishedAt:  m.FinishedAt.UTC(),
	}
}
