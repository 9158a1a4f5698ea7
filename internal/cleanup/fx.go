package cleanup

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("cleanup",
	fx.Provide(New),
	fx.Invoke(register),
)

func register(lc fx.Lifecycle, j *Janitor) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return j.Schedule(ctx)
		},
		OnStop: func(context.Context) error {
			cancel()
			return j.Shutdown()
		},
	})
}
