package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/mashaweer/mashaweer/internal/pkg/database"
	"github.com/mashaweer/mashaweer/internal/pkg/models"
)

// DriverRepo implements drivers.DriverRepo on Postgres
type DriverRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewDriverRepo creates a new driver repository
func NewDriverRepo(cfg *models.Config, db *sqlx.DB) *DriverRepo {
	return &DriverRepo{
		cfg: cfg,
		db:  db,
	}
}

// CacheRepo implements the Redis backed repositories: sessions,
// registration flows and local OTP codes
type CacheRepo struct {
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewCacheRepo creates a new Redis repository
func NewCacheRepo(cfg *models.Config, redisClient *database.RedisClient) *CacheRepo {
	return &CacheRepo{
		cfg:         cfg,
		redisClient: redisClient,
	}
}
