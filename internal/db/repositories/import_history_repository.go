package repositories

import (
	"context"
	"fmt"

	gormModels "openfleet/fleetkeeper/internal/models/gorm"

	"gorm.io/gorm"
)

// ImportHistoryRepo records and lists pipeline run audit rows
type ImportHistoryRepo struct {
	db *gorm.DB
}

func NewImportHistoryRepo(db *gorm.DB) *ImportHistoryRepo {
	return &ImportHistoryRepo{db: db}
}

func (r *ImportHistoryRepo) Record(ctx context.Context, entry *gormModels.ImportHistory) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record import history: %w", err)
	}
	return nil
}

func (r *ImportHistoryRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]gormModels.ImportHistory, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []gormModels.ImportHistory
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list import history: %w", err)
	}

	return entries, nil
}
