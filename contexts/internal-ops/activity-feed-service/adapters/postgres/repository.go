package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"conductor/contexts/internal-ops/activity-feed-service/domain/entities"
	"conductor/contexts/internal-ops/activity-feed-service/ports"

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

func (r *Repository) AppendEntry(ctx context.Context, entry entities.Entry) error {
	row := entryModelFromEntity(entry)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListEntries(ctx context.Context, filter ports.EntryFilter) ([]entities.Entry, int, error) {
	query := r.db.WithContext(ctx)
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.ActorID != "" {
		query = query.Where("actor_id = ?", filter.ActorID)
	}

	var total int64
	if err := query.Model(&entryModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []entryModel
	if err := query.
		Order("occurred_at DESC, entry_id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}

	entries := make([]entities.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntity())
	}
	return entries, int(total), nil
}

type entryModel struct {
	EntryID    string    `gorm:"column:entry_id;primaryKey"`
	ActorID    string    `gorm:"column:actor_id;index"`
	ActorName  string    `gorm:"column:actor_name"`
	Verb       string    `gorm:"column:verb"`
	EntityType string    `gorm:"column:entity_type;index"`
	EntityID   string    `gorm:"column:entity_id"`
	Summary    string    `gorm:"column:summary"`
	OccurredAt time.Time `gorm:"column:occurred_at;index"`
}

func (entryModel) TableName() string {
	return "activity_entries"
}

func entryModelFromEntity(entry entities.Entry) entryModel {
	return entryModel{
		EntryID:    entry.EntryID,
		ActorID:    entry.ActorID,
		ActorName:  entry.ActorName,
		Verb:       entry.Verb,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Summary:    entry.Summary,
		OccurredAt: entry.OccurredAt.UTC(),
	}
}

func (m entryModel) toEntity() entities.Entry {
	return entities.Entry{
		EntryID:    m.EntryID,
		ActorID:    m.ActorID,
		ActorName:  m.ActorName,
		Verb:       m.Verb,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Summary:    m.Summary,
		OccurredAt: m.OccurredAt.UTC(),
	}
}
