package follow

import (
	"go.uber.org/fx"
)

var Module = fx.Module("follow_repository",
	fx.Provide(
		fx.Annotate(
			NewPgxRepository,
			fx.As(new(Repository)),
		),
		AsReader,
	),
)

// AsReader narrows a Repository to the read side consumed by aggregation.
func AsReader(r Repository) Reader {
	return r
}
