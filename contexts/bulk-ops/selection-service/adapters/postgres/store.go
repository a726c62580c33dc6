package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists one selection blob per browsing session in postgres. Rows
// are upserted on every mutation and swept by the worker once stale.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Get(ctx context.Context, sessionID string) ([]byte, bool, error) {
	var row selectionModel
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Blob, true, nil
}

func (s *Store) Put(ctx context.Context, sessionID string, blob []byte) error {
	row := selectionModel{
		SessionID: sessionID,
		Blob:      blob,
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"blob", "updated_at"}),
		}).
		Create(&row).
		Error
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&selectionModel{}).
		Error
}

// SweepStale removes sessions untouched since cutoff; returns rows removed.
func (s *Store) SweepStale(ctx context.Context, cutoff time.Time) (int, error) {
	result := s.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&selectionModel{})
	return int(result.RowsAffected), result.Error
}

type selectionModel struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	Blob      []byte    `gorm:"column:blob"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (selectionModel) TableName() string {
	return "bulk_selections"
}
