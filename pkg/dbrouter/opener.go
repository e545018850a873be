package dbrouter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusuite/schoolms/pkg/pg"
)

// NewPoolOpener builds the production Opener: a bounded pgx pool per
// trust, derived from the base connection string with only the
// database name swapped for the trust's isolated database. Pool size
// and timeouts come from the shared pg configuration.
func NewPoolOpener(cfg pg.Config) Opener {
	return func(ctx context.Context, databaseName string) (Handle, error) {
		connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
		if err != nil {
			return nil, errors.Join(pg.ErrFailedToParseDBConfig, err)
		}
		connConfig.ConnConfig.Database = databaseName
		connConfig.MaxConns = cfg.MaxOpenConns
		connConfig.MinConns = cfg.MaxIdleConns
		connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
		connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
		connConfig.MaxConnLifetime = cfg.MaxConnLifetime

		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			return nil, errors.Join(pg.ErrFailedToOpenDBConnection, err)
		}
		// Ping before handing the pool out: a handle that cannot reach
		// its database must fail now, while the failure is retryable.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, errors.Join(pg.ErrFailedToOpenDBConnection, err)
		}
		return pool, nil
	}
}
