// Package handlers implements the read-only HTTP surface. FleetPulse is
// a client of the backing CRUD API, not a replacement for it: these
// endpoints expose only the derived views (notification feed, dashboard
// stats) and the synchronization controls.
package handlers

import (
	"context"
	"time"

	"fleetpulse.io/fleetpulse/internal/dashboard"
	"fleetpulse.io/fleetpulse/internal/domain"
	"fleetpulse.io/fleetpulse/internal/store"
)

// NotificationFeed is the slice of the alert feed the handlers need.
type NotificationFeed interface {
	Notifications() []domain.Notification
	ComputedAt() time.Time
}

// Server implements all API handlers.
type Server struct {
	feed        NotificationFeed
	projector   *dashboard.Projector
	statuses    func() []store.Status
	refreshAll  func(ctx context.Context) []store.Status
	poolMetrics func() map[string]map[string]int
}

// ServerDeps holds all dependencies for creating a Server.
// Manual DI, same as everywhere else in this codebase.
type ServerDeps struct {
	Feed      NotificationFeed
	Projector *dashboard.Projector

	// Statuses reports the per-domain sync state.
	Statuses func() []store.Status

	// RefreshAll re-fetches every domain and returns the resulting
	// per-domain statuses, failed domains included.
	RefreshAll func(ctx context.Context) []store.Status

	// PoolMetrics reports worker pool occupancy; optional.
	PoolMetrics func() map[string]map[string]int
}

// NewServer creates a new Server with all dependencies.
func NewServer(deps ServerDeps) *Server {
	return &Server{
		feed:        deps.Feed,
		projector:   deps.Projector,
		statuses:    deps.Statuses,
		refreshAll:  deps.RefreshAll,
		poolMetrics: deps.PoolMetrics,
	}
}
