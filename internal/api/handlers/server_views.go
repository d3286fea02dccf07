package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetpulse.io/fleetpulse/internal/domain"
)

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetNotifications handles GET /api/v1/notifications. The feed is
// already sorted by priority and recency; it is served as-is.
func (s *Server) GetNotifications(c *gin.Context) {
	list := s.feed.Notifications()
	if list == nil {
		list = []domain.Notification{} // an empty feed is [], not null
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": list,
		"computed_at":   s.feed.ComputedAt(),
	})
}

// GetDashboardStats handles GET /api/v1/dashboard/stats. Stats are
// recomputed from the current snapshots on every call.
func (s *Server) GetDashboardStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.projector.Stats())
}
