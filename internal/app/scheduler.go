package app

import (
	"context"
	"time"
)

// RunScheduler runs the daily sync on startup and then on every tick
// until the context is cancelled. A zero interval disables the ticker
// entirely; the HTTP job endpoint remains the only trigger.
func (a *App) RunScheduler(ctx context.Context) {
	interval := a.Config.JobSyncInterval
	if interval <= 0 {
		a.Logger.Info("sync scheduler disabled", "interval", interval.String())
		return
	}

	a.runScheduledSync(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("sync scheduler stopping")
			return
		case <-ticker.C:
			a.runScheduledSync(ctx)
		}
	}
}

func (a *App) runScheduledSync(ctx context.Context) {
	result, err := a.SyncService.RunDailySync(ctx)
	if err != nil {
		a.Logger.ErrorContext(ctx, "scheduled sync failed", "error", err)
		return
	}
	a.Logger.InfoContext(ctx, "scheduled sync finished",
		"date", result.Date,
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"total_trees_planted", result.TotalTreesPlanted,
	)
}
