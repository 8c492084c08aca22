package migrate

import (
	"context"
	"fmt"

	"github.com/yarotec/storefront/pkg/db"
	"github.com/yarotec/storefront/pkg/logger"
)

// AutoRun applies pending migrations on the client's connection. kv.Open
// calls it when STOREFRONT_DB_AUTO_MIGRATE is set.
func AutoRun(ctx context.Context, client *db.Client, driver string, logg *logger.Logger) error {
	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	if logg == nil {
		logg = logger.Nop()
	}

	ctx = logg.WithFields(ctx, map[string]any{"driver": driver, "dir": Dir})
	logg.Info(ctx, "running goose migrations")
	if err := Run(ctx, sqlDB, driver, "up"); err != nil {
		return err
	}
	logg.Info(ctx, "goose migrations completed")
	return nil
}
