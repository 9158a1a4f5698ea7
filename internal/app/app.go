package app

import (
	"github.com/Fardeen26/flashfeed/internal/blob/blobimpl"
	"github.com/Fardeen26/flashfeed/internal/cleanup"
	"github.com/Fardeen26/flashfeed/internal/feed/feedimpl"
	"github.com/Fardeen26/flashfeed/internal/httpserver"
	"github.com/Fardeen26/flashfeed/internal/identity"
	"github.com/Fardeen26/flashfeed/internal/ratelimit"
	"github.com/Fardeen26/flashfeed/internal/realtime"
	"github.com/Fardeen26/flashfeed/internal/stories"
	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/Fardeen26/flashfeed/pkg/otel"
	"github.com/Fardeen26/flashfeed/pkg/workerpool"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

// Module assembles the service. The storage backend is chosen from
// cfg.Storage.Driver when the graph is built.
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			logger.FxOption,
			clockwork.NewRealClock,
			workerpool.New,
			realtime.NewHub,
			ratelimit.New,
			blobimpl.New,
			fx.Annotate(
				identity.NewVerifier,
				fx.As(new(httpserver.TokenVerifier)),
			),
			fx.Annotate(
				identity.NewContextResolver,
				fx.As(new(identity.Resolver)),
			),
		),
		storage(cfg),
		stories.Module,
		feedimpl.Module,
		cleanup.Module,
		httpserver.Module,
		fx.Invoke(otel.Invoke),
	)
}

func storage(cfg *config.Config) fx.Option {
	if cfg.Storage.Driver == config.DriverSQLite {
		return sqliteStorage
	}
	return postgresStorage
}
