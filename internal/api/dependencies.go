package api

import (
	"os"

	"openfleet/fleetkeeper/internal/common"
	"openfleet/fleetkeeper/internal/db"
	"openfleet/fleetkeeper/internal/db/repositories"
	"openfleet/fleetkeeper/internal/logging"
	"openfleet/fleetkeeper/internal/metrics"
	"openfleet/fleetkeeper/internal/services"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Vehicles   *repositories.VehicleRepository
	UserGorm   *repositories.UserRepositoryGORM
	Keys       repositories.KeysRepo
	History    *repositories.ImportHistoryRepo
	FleetStats *repositories.FleetStatsRepo
}

type Services struct {
	Cache    common.CacheInterface
	Signer   *common.URLSignerService
	Fleet    *services.FleetService
	Stats    *services.StatsService
	Transfer *services.TransferService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// Config carries the filesystem and signing settings the services need.
type Config struct {
	StorageDir string
	ScratchDir string
	ExportDir  string
	SigningKey []byte
}

func ConfigFromEnv() Config {
	storage := os.Getenv("STORAGE_DIR")
	if storage == "" {
		storage = "data/storage"
	}
	return Config{
		StorageDir: storage,
		ScratchDir: os.TempDir(),
		ExportDir:  storage + "/exports",
		SigningKey: []byte(os.Getenv("SIGNING_SECRET")),
	}
}

func InitDependencies(cfg Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Vehicles:   repositories.NewVehicleRepository(db.PgDB),
		UserGorm:   repositories.NewUserRepositoryGORM(db.PgDB),
		Keys:       *repositories.NewApiKeysRepo(db.DB),
		History:    repositories.NewImportHistoryRepo(db.PgDB),
		FleetStats: repositories.NewFleetStatsRepo(db.DB),
	}

	// Prefer Redis when configured, fall back to the in-process cache.
	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, using in-memory cache", "error", err.Error())
			cacheSvc = common.NewCacheService(60, 600)
		} else {
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	var signer *common.URLSignerService
	if len(cfg.SigningKey) > 0 {
		var redisClient *redis.Client
		if os.Getenv("REDIS_HOST") != "" {
			redisClient = common.NewRedisClient()
		}
		signer = common.NewURLSignerService(cfg.SigningKey, redisClient)
	}

	svcs := &Services{
		Cache:    cacheSvc,
		Signer:   signer,
		Fleet:    services.NewFleetService(db.PgDB, repos.Vehicles, cacheSvc).WithMetrics(metricsReg),
		Stats:    services.NewStatsService(repos.FleetStats, cacheSvc),
		Transfer: services.NewTransferService(db.PgDB, repos.History, metricsReg, cfg.StorageDir, cfg.ScratchDir, cfg.ExportDir),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
