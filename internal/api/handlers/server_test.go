package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse.io/fleetpulse/internal/dashboard"
	"fleetpulse.io/fleetpulse/internal/domain"
	"fleetpulse.io/fleetpulse/internal/store"
)

var now = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

type stubFeed struct {
	list []domain.Notification
}

func (f *stubFeed) Notifications() []domain.Notification { return f.list }
func (f *stubFeed) ComputedAt() time.Time                { return now }

func newTestRouter(deps ServerDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := NewServer(deps)
	r := gin.New()
	r.GET("/healthz", server.GetHealth)
	r.GET("/api/v1/notifications", server.GetNotifications)
	r.GET("/api/v1/dashboard/stats", server.GetDashboardStats)
	r.GET("/api/v1/sync/status", server.GetSyncStatus)
	r.POST("/api/v1/sync/refresh", server.PostSyncRefresh)
	return r
}

func defaultDeps() ServerDeps {
	return ServerDeps{
		Feed:       &stubFeed{},
		Projector:  dashboard.NewProjector(func() dashboard.Inputs { return dashboard.Inputs{} }),
		Statuses:   func() []store.Status { return nil },
		RefreshAll: func(context.Context) []store.Status { return nil },
	}
}

func TestHealthEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	newTestRouter(defaultDeps()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNotificationsEndpointServesFeedInOrder(t *testing.T) {
	deps := defaultDeps()
	deps.Feed = &stubFeed{list: []domain.Notification{
		{ID: "remark-remarks-1", Kind: domain.KindRemark, Priority: domain.NotificationHigh},
		{ID: "task-tasks-2", Kind: domain.KindTask, Priority: domain.NotificationLow},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	newTestRouter(deps).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Notifications []domain.Notification `json:"notifications"`
		ComputedAt    time.Time             `json:"computed_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Notifications, 2)
	assert.Equal(t, "remark-remarks-1", resp.Notifications[0].ID)
	assert.Equal(t, now, resp.ComputedAt)
}

func TestNotificationsEndpointEmptyFeedIsAnArray(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	newTestRouter(defaultDeps()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notifications":[]`)
}

func TestDashboardStatsEndpoint(t *testing.T) {
	deps := defaultDeps()
	projector := dashboard.NewProjector(func() dashboard.Inputs {
		return dashboard.Inputs{Equipment: []domain.Equipment{
			{ID: "E1", Status: domain.EquipmentActive},
			{ID: "E2", Status: domain.EquipmentDecommissioned},
		}}
	})
	projector.Now = func() time.Time { return now }
	deps.Projector = projector

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	newTestRouter(deps).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var stats dashboard.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Equipment.Total)
	assert.Equal(t, 1, stats.Equipment.ActiveFleet)
}

func TestSyncStatusEndpoint(t *testing.T) {
	deps := defaultDeps()
	deps.Statuses = func() []store.Status {
		return []store.Status{
			{Domain: "equipment", Loaded: true, Count: 3, LastSync: now},
			{Domain: "tasks", Loaded: false, LastError: "fetch tasks: boom"},
		}
	}
	deps.PoolMetrics = func() map[string]map[string]int {
		return map[string]map[string]int{"remote": {"running": 0, "free": 10, "cap": 10}}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sync/status", nil)
	newTestRouter(deps).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"domain":"equipment"`)
	assert.Contains(t, w.Body.String(), `"last_error":"fetch tasks: boom"`)
	assert.Contains(t, w.Body.String(), `"pools"`)
}

func TestSyncRefreshReportsPartialFailure(t *testing.T) {
	refreshed := false
	deps := defaultDeps()
	deps.RefreshAll = func(context.Context) []store.Status {
		refreshed = true
		return []store.Status{
			{Domain: "equipment", Loaded: true, Count: 3, LastSync: now},
			{Domain: "tasks", Loaded: true, Count: 1, LastError: "fetch tasks: 503"},
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/refresh", nil)
	newTestRouter(deps).ServeHTTP(w, req)

	assert.True(t, refreshed)
	assert.Equal(t, http.StatusBadGateway, w.Code, "a stale domain is a gateway problem, not a client one")
	assert.Contains(t, w.Body.String(), `"failed":1`)
}

func TestSyncRefreshAllHealthy(t *testing.T) {
	deps := defaultDeps()
	deps.RefreshAll = func(context.Context) []store.Status {
		return []store.Status{{Domain: "equipment", Loaded: true, Count: 3, LastSync: now}}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/refresh", nil)
	newTestRouter(deps).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"failed":0`)
}
