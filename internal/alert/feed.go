package alert

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/domain"
	"fleetpulse.io/fleetpulse/internal/pkg/logger"
	"fleetpulse.io/fleetpulse/internal/pkg/worker"
)

// Feed holds the most recently aggregated notification list and keeps
// it current: every domain change topic triggers a recompute, and a
// low-frequency ticker re-evaluates date-relative conditions (a record
// crossing from due to overdue purely because time passed, with no
// data mutation).
type Feed struct {
	bus    *bus.Bus
	source func() Inputs

	// Now is the clock used for aggregation; overridable in tests.
	Now func() time.Time

	mu         sync.RWMutex
	current    []domain.Notification
	computedAt time.Time
	unsubs     []func()
	closeOnce  sync.Once
}

// NewFeed creates a feed over the given snapshot source. The source is
// called on every recompute so the feed always joins the authoritative
// current snapshots, never an event payload.
func NewFeed(b *bus.Bus, source func() Inputs) *Feed {
	return &Feed{
		bus:    b,
		source: source,
		Now:    time.Now,
	}
}

// Start subscribes to all five domain topics, computes the initial
// feed and launches the re-evaluation ticker on the worker pool.
func (f *Feed) Start(ctx context.Context, pools *worker.Pools, reeval time.Duration) error {
	for _, topic := range bus.Topics() {
		f.unsubs = append(f.unsubs, f.bus.Subscribe(topic, f.Recompute))
	}

	f.Recompute()

	return pools.SubmitDetached(pools.General, func(ctx context.Context) {
		ticker := time.NewTicker(reeval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				f.Recompute()
			}
		}
	})
}

// Recompute rebuilds the feed from the current snapshots. Safe to call
// from any goroutine; also invoked synchronously on every publish.
// Concurrent recomputes (parallel refreshes publishing from the worker
// pool) may finish out of order, so a result computed at an earlier
// instant never overwrites a later one.
func (f *Feed) Recompute() {
	now := f.Now()
	list := Aggregate(f.source(), now)

	f.mu.Lock()
	if now.Before(f.computedAt) {
		f.mu.Unlock()
		logger.Debug("stale feed recompute discarded")
		return
	}
	f.current = list
	f.computedAt = now
	f.mu.Unlock()

	logger.Debug("notification feed recomputed",
		zap.Int("count", len(list)),
	)
}

// Notifications returns a copy of the current feed.
func (f *Feed) Notifications() []domain.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.Notification, len(f.current))
	copy(out, f.current)
	return out
}

// ComputedAt returns when the feed was last rebuilt.
func (f *Feed) ComputedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.computedAt
}

// Close unsubscribes from every topic. Idempotent; the ticker stops
// with the service context. Skipping Close leaks a subscription, which
// costs harmless recomputes, not correctness.
func (f *Feed) Close() {
	f.closeOnce.Do(func() {
		for _, unsub := range f.unsubs {
			unsub()
		}
	})
}
