package repositories

import (
	"context"
	"fmt"

	"openfleet/fleetkeeper/internal/constants"
	"openfleet/fleetkeeper/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// FleetStatsRepo runs the aggregate fleet queries over sqlx; GORM stays out
// of the hot read path here.
type FleetStatsRepo struct {
	db *sqlx.DB
}

func NewFleetStatsRepo(db *sqlx.DB) *FleetStatsRepo {
	return &FleetStatsRepo{db}
}

func (r *FleetStatsRepo) GetByOwner(ctx context.Context, ownerID string) (*entities.FleetStats, error) {
	var stats entities.FleetStats

	err := r.db.QueryRowxContext(ctx, constants.GetFleetStatsByOwner, ownerID).StructScan(&stats)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fleet stats: %w", err)
	}

	return &stats, nil
}

func (r *FleetStatsRepo) GetAll(ctx context.Context) (*entities.FleetStats, error) {
	var stats entities.FleetStats

	err := r.db.QueryRowxContext(ctx, constants.GetFleetStatsAll).StructScan(&stats)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fleet stats: %w", err)
	}

	return &stats, nil
}
