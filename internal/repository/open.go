package repository

import (
	"context"
	"fmt"

	"github.com/keshster98/cashfly-backend/config"
)

// Open picks the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return OpenPostgres(ctx, cfg.DSN(), cfg.Migrate)
	case config.DriverMongo:
		return OpenMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
