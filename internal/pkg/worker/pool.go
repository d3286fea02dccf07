// Package worker provides goroutine pool management.
//
// Naked goroutines are forbidden in this codebase; all background work
// goes through a pool with context propagation, so a panicking task can
// never take the process down and shutdown can drain in-flight work.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"fleetpulse.io/fleetpulse/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware task function.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission.
type Pool struct {
	pool *ants.Pool
	name string
}

// Pools is the worker pool collection.
// Remote is sized for outbound gateway I/O (domain loads and refreshes);
// General covers everything else (feed recomputes, tickers).
type Pools struct {
	General *Pool
	Remote  *Pool

	// serviceCtx is the service lifecycle context handed to detached tasks.
	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

// PoolConfig contains worker pool sizes.
type PoolConfig struct {
	GeneralPoolSize int
	RemotePoolSize  int
}

// DefaultPoolConfig returns default configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		GeneralPoolSize: 32,
		RemotePoolSize:  10,
	}
}

// NewPools creates the worker pool collection.
func NewPools(ctx context.Context, cfg PoolConfig) (*Pools, error) {
	serviceCtx, serviceCancel := context.WithCancel(ctx)

	panicHandler := func(p interface{}) {
		logger.Error("worker panic recovered",
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	generalAnts, err := ants.NewPool(cfg.GeneralPoolSize,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		serviceCancel()
		return nil, err
	}

	remoteAnts, err := ants.NewPool(cfg.RemotePoolSize,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(30*time.Second), // remote calls are longer-lived
	)
	if err != nil {
		generalAnts.Release()
		serviceCancel()
		return nil, err
	}

	return &Pools{
		General:       &Pool{pool: generalAnts, name: "general"},
		Remote:        &Pool{pool: remoteAnts, name: "remote"},
		serviceCtx:    serviceCtx,
		serviceCancel: serviceCancel,
	}, nil
}

// Submit submits a context-aware task. If the context is already
// cancelled the task is not submitted and ctx.Err() is returned.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return p.pool.Submit(func() {
		// The context may have been cancelled while the task sat queued.
		select {
		case <-ctx.Done():
			logger.Debug("task skipped: context cancelled",
				zap.String("pool", p.name),
				zap.Error(ctx.Err()),
			)
			return
		default:
		}
		task(ctx)
	})
}

// Each runs all tasks on the pool and blocks until every one has
// finished. Tasks still queued when the context is cancelled are
// skipped but counted as finished, so Each never hangs on shutdown.
func (p *Pool) Each(ctx context.Context, tasks []Task) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		task := task
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			default:
			}
			task(ctx)
		})
		if err != nil {
			wg.Done()
			logger.Warn("task rejected",
				zap.String("pool", p.name),
				zap.Error(err),
			)
		}
	}
	wg.Wait()
}

// SubmitDetached submits a background task bound to the service
// lifecycle context instead of a request context. Use it for
// long-running work (refresh loops, re-evaluation tickers) that should
// survive request cancellation but still respect graceful shutdown.
// The target pool is one of p's own pools, typically p.General or
// p.Remote.
func (p *Pools) SubmitDetached(pool *Pool, task Task) error {
	return pool.pool.Submit(func() {
		select {
		case <-p.serviceCtx.Done():
			logger.Debug("detached task skipped: service shutting down",
				zap.String("pool", pool.name),
			)
			return
		default:
		}
		task(p.serviceCtx)
	})
}

// Shutdown cancels the service context, then releases the pools with a
// bounded wait so shutdown never hangs on a stuck task.
func (p *Pools) Shutdown() {
	p.serviceCancel()

	const shutdownTimeout = 15 * time.Second
	if err := p.General.pool.ReleaseTimeout(shutdownTimeout); err != nil {
		logger.Warn("general pool shutdown timeout", zap.Error(err))
	}
	if err := p.Remote.pool.ReleaseTimeout(shutdownTimeout); err != nil {
		logger.Warn("remote pool shutdown timeout", zap.Error(err))
	}
}

// Metrics returns pool occupancy for the sync status endpoint.
func (p *Pools) Metrics() map[string]map[string]int {
	return map[string]map[string]int{
		"general": {
			"running": p.General.pool.Running(),
			"free":    p.General.pool.Free(),
			"cap":     p.General.pool.Cap(),
		},
		"remote": {
			"running": p.Remote.pool.Running(),
			"free":    p.Remote.pool.Free(),
			"cap":     p.Remote.pool.Cap(),
		},
	}
}
