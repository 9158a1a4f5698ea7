// Package retry runs flaky outbound calls (blob lookups, the startup ping)
// with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/cenkalti/backoff/v4"
)

const multiplier = 1.5

type Config struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      multiplier,
	}
}

// FromConfig reads RETRY_* settings. Zero values fall back to DefaultConfig.
func FromConfig(cfg *config.Config) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if cfg.Retry.MaxRetries > 0 {
		c.MaxRetries = cfg.Retry.MaxRetries
	}
	if cfg.Retry.InitialInterval > 0 {
		c.InitialInterval = cfg.Retry.InitialInterval
	}
	if cfg.Retry.MaxInterval > 0 {
		c.MaxInterval = cfg.Retry.MaxInterval
	}
	return c
}

// Permanent marks err as not worth retrying. Do returns the unwrapped error.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls operation until it succeeds, returns a Permanent error, ctx ends,
// or MaxRetries retries are spent. Each retry is logged at warn level.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	bo.MaxInterval = cfg.MaxInterval
	bo.Multiplier = cfg.Multiplier
	if bo.Multiplier <= 1 {
		bo.Multiplier = multiplier
	}
	// Attempts are bounded by MaxRetries, not wall time.
	bo.MaxElapsedTime = 0
	bo.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, cfg.MaxRetries), ctx)

	attempt := 0
	notify := func(err error, wait time.Duration) {
		attempt++
		log.Warn("Retrying "+operationName,
			"attempt", attempt,
			"error", err,
			"next_attempt_in", wait.Round(time.Millisecond).String(),
		)
	}

	return backoff.RetryNotify(operation, policy, notify)
}
