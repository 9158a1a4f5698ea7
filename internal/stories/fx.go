package stories

import (
	"go.uber.org/fx"
)

var Module = fx.Module("stories",
	fx.Provide(
		NewLifecycle,
		NewLedger,
		NewAggregator,
	),
)
