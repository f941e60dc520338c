package services

import (
	"context"
	"errors"
	"time"

	"openfleet/fleetkeeper/internal/common"
	"openfleet/fleetkeeper/internal/constants"
	"openfleet/fleetkeeper/internal/db/repositories"
	"openfleet/fleetkeeper/internal/models/entities"
)

const fleetStatsCacheTTL = 1 * time.Minute

// StatsService caches the aggregate fleet queries. Stats tolerate a minute
// of staleness, so mutations do not invalidate these entries.
type StatsService struct {
	repo  *repositories.FleetStatsRepo
	cache common.CacheInterface
}

func NewStatsService(repo *repositories.FleetStatsRepo, cache common.CacheInterface) *StatsService {
	return &StatsService{repo: repo, cache: cache}
}

func (s *StatsService) GetByOwner(ctx context.Context, ownerID string) (*entities.FleetStats, error) {
	key := string(constants.CachePrefixFleetStats) + ":" + ownerID

	val, err := s.cache.GetOrSet(key, fleetStatsCacheTTL, func() (any, error) {
		return s.repo.GetByOwner(ctx, ownerID)
	})
	if err != nil {
		return nil, err
	}

	stats, ok := val.(*entities.FleetStats)
	if !ok {
		return nil, errors.New("cache type assertion to *entities.FleetStats failed")
	}
	return stats, nil
}

func (s *StatsService) GetAll(ctx context.Context) (*entities.FleetStats, error) {
	key := string(constants.CachePrefixFleetStats) + ":all"

	val, err := s.cache.GetOrSet(key, fleetStatsCacheTTL, func() (any, error) {
		return s.repo.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	stats, ok := val.(*entities.FleetStats)
	if !ok {
		return nil, errors.New("cache type assertion to *entities.FleetStats failed")
	}
	return stats, nil
}
