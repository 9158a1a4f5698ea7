package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), logger.NewNop(), "flaky", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastConfig())
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestDoStopsOnPermanent(t *testing.T) {
	errGone := errors.New("gone")
	attempts := 0
	err := Do(context.Background(), logger.NewNop(), "resolve", func() error {
		attempts++
		return Permanent(errGone)
	}, fastConfig())
	if !errors.Is(err, errGone) {
		t.Fatalf("err = %v, want %v", err, errGone)
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), logger.NewNop(), "down", func() error {
		attempts++
		return errors.New("still down")
	}, fastConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 4 {
		t.Fatalf("attempts = %d, want 4", attempts)
	}
}

func TestFromConfigOverridesDefaults(t *testing.T) {
	cfg := &config.Config{}
	cfg.Retry.MaxRetries = 7
	cfg.Retry.InitialInterval = 10 * time.Millisecond

	got := FromConfig(cfg)
	if got.MaxRetries != 7 || got.InitialInterval != 10*time.Millisecond {
		t.Fatalf("config = %+v", got)
	}
	if got.MaxInterval != DefaultConfig().MaxInterval {
		t.Fatalf("max interval = %v, want default", got.MaxInterval)
	}
	if FromConfig(nil) != DefaultConfig() {
		t.Fatal("nil config must yield defaults")
	}
}

func TestDoStopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, logger.NewNop(), "cancelled", func() error {
		attempts++
		return errors.New("transient")
	}, fastConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts > 1 {
		t.Fatalf("attempts = %d, want at most 1", attempts)
	}
}
