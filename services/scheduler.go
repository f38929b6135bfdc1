package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const autoStartRunTimeout = 30 * time.Second

// StartMatchAutoStart runs AutoStartDueMatches every interval until the
// returned scheduler is shut down. The first run happens immediately.
func StartMatchAutoStart(ctx context.Context, matches MatchService, interval time.Duration, loc *time.Location, logger *slog.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(ctx, autoStartRunTimeout)
			defer cancel()
			if _, err := matches.AutoStartDueMatches(runCtx, time.Now()); err != nil {
				logger.Error("Scheduler: match auto-start failed", slog.Any("error", err))
			}
		}),
		gocron.WithName("match-auto-start"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to schedule match auto-start: %w", err)
	}

	sched.Start()
	logger.Info("Match auto-start scheduler started", slog.Duration("interval", interval))
	return sched, nil
}
