package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSyncStatus handles GET /api/v1/sync/status: per-domain last sync
// time, snapshot size and last error, plus worker pool occupancy.
func (s *Server) GetSyncStatus(c *gin.Context) {
	resp := gin.H{"domains": s.statuses()}
	if s.poolMetrics != nil {
		resp["pools"] = s.poolMetrics()
	}
	c.JSON(http.StatusOK, resp)
}

// PostSyncRefresh handles POST /api/v1/sync/refresh: re-fetches all
// five domains. Each domain that succeeds publishes its change topic,
// so the derived views re-derive before the response is written. A
// partial failure still refreshes the other domains; 502 signals that
// at least one domain is stale.
func (s *Server) PostSyncRefresh(c *gin.Context) {
	statuses := s.refreshAll(c.Request.Context())

	failed := 0
	for _, st := range statuses {
		if st.LastError != "" {
			failed++
		}
	}

	status := http.StatusOK
	if failed > 0 {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{
		"domains": statuses,
		"failed":  failed,
	})
}
