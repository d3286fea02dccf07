package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse.io/fleetpulse/internal/auth"
	"fleetpulse.io/fleetpulse/internal/domain"
	apperrors "fleetpulse.io/fleetpulse/internal/pkg/errors"
	"fleetpulse.io/fleetpulse/internal/pkg/logger"
)

func init() {
	_ = logger.Init("error", "json")
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Options{BaseURL: srv.URL, Timeout: 2 * time.Second}, auth.NewStaticSource("test-token"))
	return client, srv
}

func TestResourceListDecodesDates(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/equipment", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"E1","name":"Crane","status":"active","next_service_date":"2026-09-15"}]`))
	}))

	res := NewResource[string, domain.Equipment](client, "/equipment")
	items, err := res.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	// Dates arrive as ISO-8601 strings and must be real times in the
	// snapshot, never raw strings.
	assert.Equal(t, 2026, items[0].NextServiceDate.Year())
	assert.Equal(t, time.September, items[0].NextServiceDate.Month())
}

func TestResourceCreateRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"equipment_id":"E1","title":"Replace filter","status":"pending","priority":"low"}`))
	}))

	res := NewResource[int, domain.Task](client, "/tasks")
	created, err := res.Create(context.Background(), domain.Task{Title: "Replace filter", Status: domain.TaskPending, Priority: domain.TaskPriorityLow})
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID, "server-assigned id must come back canonical")
}

func TestResourceUpdateAndDeletePaths(t *testing.T) {
	var gotPaths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		_, _ = w.Write([]byte(`{"id":3,"equipment_id":"E1","text":"ok","status":"resolved","priority":"low"}`))
	}))

	res := NewResource[int, domain.Remark](client, "/remarks")
	_, err := res.Update(context.Background(), 3, domain.Remark{Text: "ok", Status: domain.RemarkResolved, Priority: domain.RemarkPriorityLow})
	require.NoError(t, err)
	require.NoError(t, res.Delete(context.Background(), 3))

	assert.Equal(t, []string{"PUT /remarks/3", "DELETE /remarks/3"}, gotPaths)
}

func TestStatusErrorMapping(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))

	res := NewResource[string, domain.Equipment](client, "/equipment")
	err := res.Delete(context.Background(), "E404")
	require.Error(t, err)

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestMissingTokenFailsBeforeRequest(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hit = true }))
	t.Cleanup(srv.Close)

	client := NewClient(Options{BaseURL: srv.URL}, auth.NewStaticSource(""))
	res := NewResource[string, domain.Equipment](client, "/equipment")
	_, err := res.List(context.Background())

	assert.ErrorIs(t, err, auth.ErrNoToken)
	assert.False(t, hit, "no request may leave the process without a credential")
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "no such record", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		BaseURL:         srv.URL,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	}, auth.NewStaticSource("t"))
	res := NewResource[string, domain.Equipment](client, "/equipment")

	// Well past the breaker threshold; every call must still reach the
	// backend and come back as not-found, never as unavailable.
	for i := 0; i < 5; i++ {
		err := res.Delete(context.Background(), "E404")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		assert.False(t, errors.Is(err, apperrors.ErrUnavailable),
			"a burst of 404s must not open the breaker on a healthy backend")
	}
	assert.Equal(t, 5, calls)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		BaseURL:         srv.URL,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	}, auth.NewStaticSource("t"))
	res := NewResource[string, domain.Equipment](client, "/equipment")

	for i := 0; i < 2; i++ {
		_, err := res.List(context.Background())
		require.Error(t, err)
	}

	_, err := res.List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnavailable), "breaker should be open")
	assert.Equal(t, 2, calls, "open breaker must fail fast without hitting the backend")
}
