// Package pgx owns the Postgres pool backing the repositories.
package pgx

import (
	"context"
	"fmt"

	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/Fardeen26/flashfeed/pkg/retry"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const applicationName = "flashfeed"

type Opts struct {
	fx.In
	LC     fx.Lifecycle
	Logger logger.Logger
	Config *config.Config
}

// PoolConfig parses connURL and applies the service's pool settings.
// A non-empty searchPath pins every connection to that schema.
func PoolConfig(connURL string, maxConns int32, searchPath string) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}
	if maxConns > 0 {
		pc.MaxConns = maxConns
	}
	pc.ConnConfig.RuntimeParams["application_name"] = applicationName
	if searchPath != "" {
		pc.ConnConfig.RuntimeParams["search_path"] = searchPath
	}
	return pc, nil
}

// New creates the pool. The connection is verified with a retried ping on
// start, so a database still booting does not fail the service.
func New(opts Opts) (*pgxpool.Pool, error) {
	pc, err := PoolConfig(opts.Config.PostgresURL(), opts.Config.Postgres.MaxConns, "")
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	log := opts.Logger.WithComponent("Postgres")
	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ping := func() error { return pool.Ping(ctx) }
			if err := retry.Do(ctx, log, "postgres ping", ping, retry.FromConfig(opts.Config)); err != nil {
				return fmt.Errorf("failed to ping postgres: %w", err)
			}
			log.Info("Connected to postgres", "host", opts.Config.Postgres.Host, "max_conns", pc.MaxConns)
			return nil
		},
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}
