// Package store implements the domain store contract: each store owns
// exactly one entity collection, fetches it from the remote backend,
// exposes synchronous read accessors over the current snapshot and
// publishes a change signal after every successful mutation.
//
// The snapshot is only ever advanced from server-confirmed responses —
// there are no optimistic updates, so a failed remote call never needs
// a rollback. Each snapshot has a single writer: its own store. All
// other components, including the derived views, only read.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fleetpulse.io/fleetpulse/internal/bus"
	apperrors "fleetpulse.io/fleetpulse/internal/pkg/errors"
	"fleetpulse.io/fleetpulse/internal/pkg/logger"
	"fleetpulse.io/fleetpulse/internal/pkg/validate"
	"fleetpulse.io/fleetpulse/internal/remote"
)

// Gateway is what a store needs from the remote layer.
// *remote.Resource satisfies it.
type Gateway[ID comparable, E any] interface {
	List(ctx context.Context) ([]E, error)
	Create(ctx context.Context, in E) (E, error)
	Update(ctx context.Context, id ID, in E) (E, error)
	Delete(ctx context.Context, id ID) error
}

// Status is a point-in-time description of a store's sync state.
type Status struct {
	Domain    string    `json:"domain"`
	Loaded    bool      `json:"loaded"`
	Count     int       `json:"count"`
	LastSync  time.Time `json:"last_sync,omitzero"`
	LastError string    `json:"last_error,omitempty"`
}

// Store is the generic domain store, instantiated once per domain.
type Store[ID comparable, E any] struct {
	domain string
	topic  bus.Topic
	gw     Gateway[ID, E]
	bus    *bus.Bus
	idOf   func(E) ID
	check  func(E) error // optional cross-field invariant, may be nil

	mu       sync.RWMutex
	items    []E
	loaded   bool
	lastSync time.Time
	lastErr  error
}

// New creates a store for one domain. idOf extracts the server-assigned
// identifier; check, when non-nil, enforces a cross-field invariant
// that validate tags cannot express.
func New[ID comparable, E any](
	domain string,
	topic bus.Topic,
	gw Gateway[ID, E],
	b *bus.Bus,
	idOf func(E) ID,
	check func(E) error,
) *Store[ID, E] {
	return &Store[ID, E]{
		domain: domain,
		topic:  topic,
		gw:     gw,
		bus:    b,
		idOf:   idOf,
		check:  check,
	}
}

// Domain returns the store's domain name.
func (s *Store[ID, E]) Domain() string { return s.domain }

// Topic returns the change topic this store publishes.
func (s *Store[ID, E]) Topic() bus.Topic { return s.topic }

// Load replaces the in-memory snapshot from the remote. On failure the
// previous snapshot is kept untouched (or stays empty on first load)
// and the error is surfaced. Load publishes nothing: it is the
// mount-time fetch. Use Refresh for invalidation-triggered reloads so
// chained observers re-derive.
func (s *Store[ID, E]) Load(ctx context.Context) error {
	items, err := s.gw.List(ctx)
	if err != nil {
		ferr := apperrors.FetchFailed(s.domain, err).WithStatus(remote.StatusOf(err))
		s.mu.Lock()
		s.lastErr = ferr
		s.mu.Unlock()
		logger.Warn("domain load failed, keeping previous snapshot",
			zap.String("domain", s.domain),
			zap.Error(err),
		)
		return ferr
	}

	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.lastSync = time.Now()
	s.lastErr = nil
	count := len(items)
	s.mu.Unlock()

	logger.Debug("domain loaded",
		zap.String("domain", s.domain),
		zap.Int("count", count),
	)
	return nil
}

// Refresh is Load plus a change publish on success. A reload triggered
// by an externally observed invalidation must announce its completion.
func (s *Store[ID, E]) Refresh(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.bus.Publish(s.topic)
	return nil
}

// Create validates in, sends it to the remote and, on success, appends
// the server's canonical entity to the snapshot and publishes the
// change topic. On failure the snapshot is left untouched and the error
// is surfaced to the caller; there is no silent retry.
func (s *Store[ID, E]) Create(ctx context.Context, in E) (E, error) {
	var zero E
	if err := s.validate(in); err != nil {
		return zero, apperrors.InvalidInput(s.domain, "create", err)
	}

	created, err := s.gw.Create(ctx, in)
	if err != nil {
		return zero, apperrors.MutationFailed(s.domain, "create", err).WithStatus(remote.StatusOf(err))
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()

	s.bus.Publish(s.topic)
	return created, nil
}

// Update replaces the matching snapshot entry with the server's
// canonical entity and publishes the change topic. Concurrent updates
// are last-write-wins at the server.
func (s *Store[ID, E]) Update(ctx context.Context, id ID, in E) (E, error) {
	var zero E
	if err := s.validate(in); err != nil {
		return zero, apperrors.InvalidInput(s.domain, "update", err)
	}

	updated, err := s.gw.Update(ctx, id, in)
	if err != nil {
		return zero, apperrors.MutationFailed(s.domain, "update", err).WithStatus(remote.StatusOf(err))
	}

	s.mu.Lock()
	replaced := false
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items[i] = updated
			replaced = true
			break
		}
	}
	if !replaced {
		// The entity exists server-side but was missing locally
		// (e.g. created from another session since the last fetch).
		s.items = append(s.items, updated)
	}
	s.mu.Unlock()

	s.bus.Publish(s.topic)
	return updated, nil
}

// Remove deletes the entity remotely, drops it from the snapshot and
// publishes the change topic.
func (s *Store[ID, E]) Remove(ctx context.Context, id ID) error {
	if err := s.gw.Delete(ctx, id); err != nil {
		return apperrors.MutationFailed(s.domain, "delete", err).WithStatus(remote.StatusOf(err))
	}

	s.mu.Lock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.bus.Publish(s.topic)
	return nil
}

// Snapshot returns a copy of the current collection. Pure and
// synchronous; never triggers I/O.
func (s *Store[ID, E]) Snapshot() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the entity with the given id from the snapshot.
func (s *Store[ID, E]) Get(id ID) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.idOf(s.items[i]) == id {
			return s.items[i], true
		}
	}
	var zero E
	return zero, false
}

// Len returns the snapshot size.
func (s *Store[ID, E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Status reports the store's sync state for the status endpoint.
func (s *Store[ID, E]) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{
		Domain:   s.domain,
		Loaded:   s.loaded,
		Count:    len(s.items),
		LastSync: s.lastSync,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

func (s *Store[ID, E]) validate(in E) error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if s.check != nil {
		return s.check(in)
	}
	return nil
}
