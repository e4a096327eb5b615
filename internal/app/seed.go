package app

import (
	"context"
	"log/slog"

	postgres "github.com/heartmarshall/refbook-backend/internal/adapter/postgres"
	"github.com/heartmarshall/refbook-backend/internal/adapter/postgres/refbook"
	"github.com/heartmarshall/refbook-backend/internal/app/seeder"
	"github.com/heartmarshall/refbook-backend/internal/config"
)

// Seed loads the fixture at path into the configured database. A dry run
// only parses and validates the file and never connects.
func Seed(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string, dryRun bool) (seeder.Result, error) {
	if dryRun {
		return seeder.New(logger, nil, nil).Run(ctx, path, true)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return seeder.Result{}, err
	}
	defer pool.Close()

	s := seeder.New(logger, refbook.New(pool), postgres.NewTxManager(pool))
	return s.Run(ctx, path, false)
}
