package user

import (
	"go.uber.org/fx"
)

var Module = fx.Module("user_repository",
	fx.Provide(
		fx.Annotate(
			NewPgxRepository,
			fx.As(new(Repository)),
		),
	),
)
