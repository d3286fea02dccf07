package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fleetpulse.io/fleetpulse/internal/pkg/logger"
	"fleetpulse.io/fleetpulse/internal/pkg/worker"
	"fleetpulse.io/fleetpulse/internal/store"
)

// Start performs the initial load of all five domains in parallel, then
// launches the notification feed and the periodic refresh loop. A
// domain that fails its initial load leaves the service degraded, not
// down: its snapshot stays empty and the background refresh keeps
// retrying.
func (a *Application) Start(ctx context.Context) error {
	var tasks []worker.Task
	for _, st := range a.Stores.each() {
		st := st
		tasks = append(tasks, func(ctx context.Context) {
			if err := st.Load(ctx); err != nil {
				logger.Warn("initial load failed",
					zap.String("domain", st.Domain()),
					zap.Error(err),
				)
				return
			}
			logger.Info("domain loaded",
				zap.String("domain", st.Domain()),
				zap.Int("count", st.Status().Count),
			)
		})
	}
	a.Pools.Remote.Each(ctx, tasks)

	if err := a.Feed.Start(ctx, a.Pools, a.Config.Sync.ReevalInterval); err != nil {
		return err
	}

	return a.Pools.SubmitDetached(a.Pools.Remote, func(ctx context.Context) {
		ticker := time.NewTicker(a.Config.Sync.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.RefreshAll(ctx)
			}
		}
	})
}

// RefreshAll re-fetches every domain in parallel and returns the
// resulting per-domain statuses. Each domain that succeeds publishes
// its change topic; failed domains keep their previous snapshot.
func (a *Application) RefreshAll(ctx context.Context) []store.Status {
	start := time.Now()

	var tasks []worker.Task
	for _, st := range a.Stores.each() {
		st := st
		tasks = append(tasks, func(ctx context.Context) {
			if err := st.Refresh(ctx); err != nil {
				logger.Warn("refresh failed",
					zap.String("domain", st.Domain()),
					zap.Error(err),
				)
			}
		})
	}
	a.Pools.Remote.Each(ctx, tasks)

	statuses := a.Stores.Statuses()
	failed := 0
	for _, st := range statuses {
		if st.LastError != "" {
			failed++
		}
	}
	logger.Info("refresh cycle finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("failed", failed),
	)
	return statuses
}

// Shutdown gracefully shuts down all application components.
func (a *Application) Shutdown() {
	a.Feed.Close()
	a.Pools.Shutdown()
}
