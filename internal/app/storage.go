package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Fardeen26/flashfeed/internal/migrations"
	"github.com/Fardeen26/flashfeed/internal/repositories/follow"
	repositories "github.com/Fardeen26/flashfeed/internal/repositories/fx"
	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/internal/repositories/storyview"
	"github.com/Fardeen26/flashfeed/internal/repositories/user"
	"github.com/Fardeen26/flashfeed/internal/storage/sqlite"
	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/Fardeen26/flashfeed/pkg/pgx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var postgresStorage = fx.Options(
	fx.Provide(pgx.New),
	repositories.Module,
	fx.Invoke(migratePostgres),
)

var sqliteStorage = fx.Module("sqlite_storage",
	fx.Provide(
		openSQLite,
		func(s *sqlite.Store) story.Repository { return s.Stories() },
		func(s *sqlite.Store) storyview.Repository { return s.StoryViews() },
		func(s *sqlite.Store) follow.Repository { return s.Follows() },
		func(s *sqlite.Store) user.Repository { return s.Users() },
		follow.AsReader,
	),
)

func migratePostgres(c *config.Config, log logger.Logger) error {
	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migrations.Up(context.Background(), db, goose.DialectPostgres)
	if err != nil {
		return fmt.Errorf("failed to migrate postgres: %w", err)
	}
	log.Info("Postgres schema up to date", "applied", applied)
	return nil
}

func openSQLite(lc fx.Lifecycle, c *config.Config, log logger.Logger) (*sqlite.Store, error) {
	store, err := sqlite.Open(c.Storage.SqlitePath)
	if err != nil {
		return nil, err
	}
	log.Info("Opened sqlite store", "path", c.Storage.SqlitePath)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}
