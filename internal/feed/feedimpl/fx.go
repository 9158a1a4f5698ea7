package feedimpl

import (
	"github.com/Fardeen26/flashfeed/internal/feed"
	"go.uber.org/fx"
)

var Module = fx.Module("feed",
	fx.Provide(
		fx.Annotate(
			New,
			fx.As(new(feed.Client)),
		),
	),
)
