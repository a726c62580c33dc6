package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conductor/contexts/catalog/asset-service/domain/entities"
	domainerrors "conductor/contexts/catalog/asset-service/domain/errors"
	"conductor/contexts/catalog/asset-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

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

func (r *Repository) CreateAsset(ctx context.Context, asset entities.Asset) error {
	row, err := assetModelFromEntity(asset)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetAsset(ctx context.Context, assetID string) (entities.Asset, error) {
	var row assetModel
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Asset{}, domainerrors.ErrAssetNotFound
		}
		return entities.Asset{}, err
	}
	return row.toEntity()
}

func (r *Repository) UpdateAsset(ctx context.Context, asset entities.Asset) error {
	row, err := assetModelFromEntity(asset)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&assetModel{}).
		Where("asset_id = ?", asset.AssetID).
		Updates(map[string]any{
			"title":          row.Title,
			"description":    row.Description,
			"category":       row.Category,
			"details":        row.Details,
			"workflow_state": row.WorkflowState,
			"collection_id":  row.CollectionID,
			"updated_at":     row.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrAssetNotFound
	}
	return nil
}

func (r *Repository) DeleteAsset(ctx context.Context, assetID string) error {
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).Delete(&assetModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrAssetNotFound
	}
	return nil
}

func (r *Repository) ListAssets(ctx context.Context, filter ports.AssetListFilter) ([]entities.Asset, int, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Model(&assetModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []assetModel
	if err := query.
		Order("created_at ASC, asset_id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&rows).
		Error; err != nil {
		return nil, 0, err
	}

	assets := make([]entities.Asset, 0, len(rows))
	for _, row := range rows {
		asset, err := row.toEntity()
		if err != nil {
			r.logger.Warn("skipping undecodable asset row",
				"event", "asset_row_decode_failed",
				"module", "asset-service",
				"layer", "adapter",
				"asset_id", row.AssetID,
				"error", err)
			continue
		}
		assets = append(assets, asset)
	}
	return assets, int(total), nil
}

func (r *Repository) ListAssetIDs(ctx context.Context, filter ports.AssetListFilter) ([]string, error) {
	var ids []string
	err := r.filtered(ctx, filter).
		Model(&assetModel{}).
		Order("created_at ASC, asset_id ASC").
		Pluck("asset_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) SetWorkflowState(ctx context.Context, assetID string, state string) error {
	res := r.db.WithContext(ctx).
		Model(&assetModel{}).
		Where("asset_id = ?", assetID).
		Updates(map[string]any{
			"workflow_state": state,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrAssetNotFound
	}
	return nil
}

func (r *Repository) filtered(ctx context.Context, filter ports.AssetListFilter) *gorm.DB {
	query := r.db.WithContext(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.WorkflowState != "" {
		query = query.Where("workflow_state = ?", filter.WorkflowState)
	}
	if filter.ContributorID != "" {
		query = query.Where("contributor_id = ?", filter.ContributorID)
	}
	if filter.CollectionID != "" {
		query = query.Where("collection_id = ?", filter.CollectionID)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func (r *Repository) CreateCollection(ctx context.Context, collection entities.Collection) error {
	row := collectionModelFromEntity(collection)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) GetCollection(ctx context.Context, collectionID string) (entities.Collection, error) {
	var row collectionModel
	err := r.db.WithContext(ctx).Where("collection_id = ?", collectionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Collection{}, domainerrors.ErrCollectionNotFound
		}
		return entities.Collection{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCollections(ctx context.Context) ([]entities.Collection, error) {
	var rows []collectionModel
	if err := r.db.WithContext(ctx).Order("collection_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	collections := make([]entities.Collection, 0, len(rows))
	for _, row := range rows {
		collections = append(collections, row.toEntity())
	}
	return collections, nil
}

func (r *Repository) AssignAssetToCollection(ctx context.Context, assetID, collectionID string) error {
	res := r.db.WithContext(ctx).
		Model(&assetModel{}).
		Where("asset_id = ?", assetID).
		Updates(map[string]any{
			"collection_id": collectionID,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrAssetNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

type assetModel struct {
	AssetID       string    `gorm:"column:asset_id;primaryKey"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	ContributorID string    `gorm:"column:contributor_id;index"`
	Category      string    `gorm:"column:category;index"`
	Details       []byte    `gorm:"column:details;type:jsonb"`
	WorkflowState string    `gorm:"column:workflow_state;index"`
	CollectionID  string    `gorm:"column:collection_id;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (assetModel) TableName() string {
	return "assets"
}

func assetModelFromEntity(asset entities.Asset) (assetModel, error) {
	details, err := json.Marshal(asset.Details)
	if err != nil {
		return assetModel{}, fmt.Errorf("encode asset details: %w", err)
	}
	return assetModel{
		AssetID:       asset.AssetID,
		Title:         asset.Title,
		Description:   asset.Description,
		ContributorID: asset.ContributorID,
		Category:      string(asset.Category),
		Details:       details,
		WorkflowState: asset.WorkflowState,
		CollectionID:  asset.CollectionID,
		CreatedAt:     asset.CreatedAt.UTC(),
		UpdatedAt:     asset.UpdatedAt.UTC(),
	}, nil
}

func (m assetModel) toEntity() (entities.Asset, error) {
	details, err := decodeDetails(entities.Category(m.Category), m.Details)
	if err != nil {
		return entities.Asset{}, err
	}
	return entities.Asset{
		AssetID:       m.AssetID,
		Title:         m.Title,
		Description:   m.Description,
		ContributorID: m.ContributorID,
		Category:      entities.Category(m.Category),
		Details:       details,
		WorkflowState: m.WorkflowState,
		CollectionID:  m.CollectionID,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}, nil
}

func decodeDetails(category entities.Category, raw []byte) (entities.Details, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch category {
	case entities.CategoryMusic:
		var d entities.MusicDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode music details: %w", err)
		}
		return d, nil
	case entities.CategorySFX:
		var d entities.SFXDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode sfx details: %w", err)
		}
		return d, nil
	case entities.CategoryMotionGraphics:
		var d entities.MotionGraphicsDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode motion graphics details: %w", err)
		}
		return d, nil
	case entities.CategoryLUT:
		var d entities.LUTDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode lut details: %w", err)
		}
		return d, nil
	case entities.CategoryStockFootage:
		var d entities.StockFootageDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode stock footage details: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown asset category %q", category)
	}
}

type collectionModel struct {
	CollectionID string    `gorm:"column:collection_id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description"`
	CuratorID    string    `gorm:"column:curator_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (collectionModel) TableName() string {
	return "collections"
}

func collectionModelFromEntity(collection entities.Collection) collectionModel {
	return collectionModel{
		CollectionID: collection.CollectionID,
		Name:         collection.Name,
		Description:  collection.Description,
		CuratorID:    collection.CuratorID,
		CreatedAt:    collection.CreatedAt.UTC(),
		UpdatedAt:    collection.UpdatedAt.UTC(),
	}
}

func (m collectionModel) toEntity() entities.Collection {
	return entities.Collection{
		CollectionID: m.CollectionID,
		Name:         m.Name,
		Description:  m.Description,
		CuratorID:    m.CuratorID,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}
