// Package bootstrap wires up runtime dependencies for the cmd entry points.
package bootstrap

import (
	"fmt"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	Migrate bool
}

// InitRuntime connects to the database and Redis and optionally applies
// schema migrations. The Redis client may be nil when the cache is
// unreachable; callers degrade gracefully.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.Migrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("schema migration failed: %w", err)
		}
	}

	cache.InitRedis(cfg.RedisURL)
	return db, cache.GetClient(), nil
}
