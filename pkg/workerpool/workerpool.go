package workerpool

import (
	"context"
	"fmt"

	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

// New creates the shared fan-out pool. Its size bounds how many owner fetches
// hit the persistence layer at once across all concurrent feed builds.
func New(lc fx.Lifecycle, cfg *config.Config) (*ants.Pool, error) {
	pool, err := ants.NewPool(cfg.Feed.FanoutWorkers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Release()
			return nil
		},
	})

	return pool, nil
}
