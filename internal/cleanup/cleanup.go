package cleanup

import (
	"context"
	"fmt"
	"time"

	"github.com/Fardeen26/flashfeed/internal/repositories/story"
	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/Fardeen26/flashfeed/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
)

const runTimeout = 5 * time.Minute

type Opts struct {
	fx.In

	Stories story.Repository
	Clock   clockwork.Clock
	Config  *config.Config
	Logger  logger.Logger
}

// Janitor physically removes stories that expired longer than the retention
// window ago. Reads never depend on it: expired stories are filtered at query
// time regardless.
type Janitor struct {
	stories   story.Repository
	clock     clockwork.Clock
	retention time.Duration
	hour      uint
	timezone  string
	logger    logger.Logger

	scheduler gocron.Scheduler
}

func New(opts Opts) *Janitor {
	return &Janitor{
		stories:   opts.Stories,
		clock:     opts.Clock,
		retention: opts.Config.Cleanup.Retention,
		hour:      opts.Config.Cleanup.Hour,
		timezone:  opts.Config.Cleanup.Timezone,
		logger:    opts.Logger.WithComponent("Cleanup"),
	}
}

// Run deletes every story whose expiry is older than now minus retention.
func (j *Janitor) Run(ctx context.Context) (int64, error) {
	cutoff := j.clock.Now().Add(-j.retention)

	deleted, err := j.stories.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired stories: %w", err)
	}
	return deleted, nil
}

// Schedule registers the daily job and starts the scheduler.
func (j *Janitor) Schedule(ctx context.Context) error {
	loc, err := time.LoadLocation(j.timezone)
	if err != nil {
		loc = time.UTC
		j.logger.Warn("Failed to load cleanup timezone, using UTC", "timezone", j.timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(j.hour, 0, 0)),
		),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				j.logger.Info("Context cancelled, skipping story cleanup")
				return
			}

			j.logger.Info("Starting scheduled story cleanup")

			runCtx, cancel := context.WithTimeout(ctx, runTimeout)
			defer cancel()

			deleted, err := j.Run(runCtx)
			if err != nil {
				j.logger.Error("Story cleanup failed", "error", err)
				return
			}

			j.logger.Info("Story cleanup completed", "rows_deleted", deleted)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule story cleanup: %w", err)
	}

	scheduler.Start()
	j.scheduler = scheduler
	return nil
}

// Shutdown stops the scheduler and waits for a running job to finish.
func (j *Janitor) Shutdown() error {
	if j.scheduler == nil {
		return nil
	}
	if err := j.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down cleanup scheduler: %w", err)
	}
	return nil
}
