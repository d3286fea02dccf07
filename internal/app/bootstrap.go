// Package app is the composition root. Bootstrap stays
// orchestration-only: it wires dependencies and owns no domain logic.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"fleetpulse.io/fleetpulse/internal/alert"
	"fleetpulse.io/fleetpulse/internal/api/handlers"
	"fleetpulse.io/fleetpulse/internal/auth"
	"fleetpulse.io/fleetpulse/internal/bus"
	"fleetpulse.io/fleetpulse/internal/config"
	"fleetpulse.io/fleetpulse/internal/dashboard"
	"fleetpulse.io/fleetpulse/internal/pkg/worker"
	"fleetpulse.io/fleetpulse/internal/remote"
)

// Application holds composed application dependencies.
type Application struct {
	Config    *config.Config
	Router    *gin.Engine
	Bus       *bus.Bus
	Stores    *Stores
	Feed      *alert.Feed
	Projector *dashboard.Projector
	Pools     *worker.Pools
	Tokens    *auth.StaticSource
}

// Bootstrap initializes all dependencies using manual DI.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Application, error) {
	poolCfg := worker.DefaultPoolConfig()
	if cfg.Worker.GeneralPoolSize > 0 {
		poolCfg.GeneralPoolSize = cfg.Worker.GeneralPoolSize
	}
	if cfg.Worker.RemotePoolSize > 0 {
		poolCfg.RemotePoolSize = cfg.Worker.RemotePoolSize
	}
	pools, err := worker.NewPools(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("init worker pools: %w", err)
	}

	tokens := auth.NewStaticSource(cfg.Auth.Token)
	client := remote.NewClient(remote.Options{
		BaseURL:         cfg.Remote.BaseURL,
		Timeout:         cfg.Remote.Timeout,
		RateLimit:       cfg.Remote.RateLimit,
		RateBurst:       cfg.Remote.RateBurst,
		BreakerFailures: cfg.Remote.BreakerFailures,
		BreakerCooldown: cfg.Remote.BreakerCooldown,
	}, tokens)

	b := bus.New()
	stores := newStores(client, b)
	feed := alert.NewFeed(b, stores.alertInputs)
	projector := dashboard.NewProjector(stores.dashboardInputs)

	app := &Application{
		Config:    cfg,
		Bus:       b,
		Stores:    stores,
		Feed:      feed,
		Projector: projector,
		Pools:     pools,
		Tokens:    tokens,
	}

	server := handlers.NewServer(handlers.ServerDeps{
		Feed:        feed,
		Projector:   projector,
		Statuses:    stores.Statuses,
		RefreshAll:  app.RefreshAll,
		PoolMetrics: pools.Metrics,
	})
	app.Router = newRouter(cfg, server)

	return app, nil
}
