package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/projecthub/pkg/log"
	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the janitor every minute.
const DefaultSweepSchedule = "@every 1m"

// Janitor periodically sweeps expired sessions out of a store.
type Janitor struct {
	store    Store
	schedule string
	logger   *slog.Logger
	cron     *cron.Cron
}

func NewJanitor(store Store, schedule string, logger *slog.Logger) *Janitor {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	return &Janitor{
		store:    store,
		schedule: schedule,
		logger:   log.Named(logger, "session_janitor"),
	}
}

// Start schedules the sweep job; ctx is passed to every sweep.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	if _, err := c.AddFunc(j.schedule, func() { j.sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule '%s': %w", j.schedule, err)
	}

	j.cron = c
	j.cron.Start()
	j.logger.InfoContext(ctx, "Session janitor started", "schedule", j.schedule)

	return nil
}

func (j *Janitor) sweep(ctx context.Context) {
	if _, err := j.store.Sweep(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Failed to sweep sessions", "error", err)
	}
}

// Stop waits for a running sweep to finish.
func (j *Janitor) Stop() {
	if j.cron == nil {
		return
	}

	<-j.cron.Stop().Done()
	j.logger.Info("Session janitor stopped")
}
