package storyview

import (
	"go.uber.org/fx"
)

var Module = fx.Module("storyview_repository",
	fx.Provide(
		fx.Annotate(
			NewPgx,
			fx.As(new(Repository)),
		),
	),
)
