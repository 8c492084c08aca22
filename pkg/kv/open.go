package kv

import (
	"context"
	"fmt"

	"github.com/yarotec/storefront/pkg/config"
	"github.com/yarotec/storefront/pkg/db"
	"github.com/yarotec/storefront/pkg/logger"
	"github.com/yarotec/storefront/pkg/migrate"
	"github.com/yarotec/storefront/pkg/redis"
)

// Open builds the Store selected by cfg.Storage.Driver. The returned close
// function releases any pooled connection and is never nil.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return NewMemoryStore(), noop, nil
	case config.StorageDriverFile, "":
		store, err := NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		client, err := db.New(ctx, cfg.Storage.Driver, cfg.DB, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap database: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := migrate.AutoRun(ctx, client, cfg.Storage.Driver, logg); err != nil {
				_ = client.Close()
				return nil, noop, fmt.Errorf("migrate kv table: %w", err)
			}
		}
		return NewGormStore(client), client.Close, nil
	case config.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap redis: %w", err)
		}
		return NewRedisStore(client), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
