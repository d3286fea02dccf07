package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fleetpulse.io/fleetpulse/internal/api/handlers"
	"fleetpulse.io/fleetpulse/internal/api/middleware"
	"fleetpulse.io/fleetpulse/internal/config"
	"fleetpulse.io/fleetpulse/internal/pkg/logger"
)

func newRouter(cfg *config.Config, server *handlers.Server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())
	router.Use(cors.New(corsConfig(cfg)))

	router.GET("/healthz", server.GetHealth)

	// zap's AtomicLevel doubles as a GET/PUT level endpoint.
	router.Any("/log/level", gin.WrapH(logger.Level()))

	v1 := router.Group("/api/v1")
	v1.GET("/notifications", server.GetNotifications)
	v1.GET("/dashboard/stats", server.GetDashboardStats)
	v1.GET("/sync/status", server.GetSyncStatus)
	v1.POST("/sync/refresh", server.PostSyncRefresh)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) == 1 && cfg.Server.AllowedOrigins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.Server.AllowedOrigins
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	return c
}
