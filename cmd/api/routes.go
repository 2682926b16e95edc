package main

import (
	"call-analytics/internal/auth"
	"call-analytics/internal/config"
	"call-analytics/internal/httpapi"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, rdb *redis.Client, cfg config.Config) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if h.Auth != nil {
		r.POST("/login", h.Login)
	}

	api := r.Group("/api")
	{
		// Ingestion stays open to the replay clients; the burst cap is
		// the only guard, and only when Redis is around to back it.
		callsGroup := api.Group("/calls")
		if rdb != nil {
			callsGroup.Use(httpapi.IngestBurstCap(rdb, cfg.Analytics.IngestBurstLimit))
		}
		callsGroup.POST("", h.ReceiveCall)

		analyticsGroup := api.Group("/analytics")
		if h.Auth != nil {
			analyticsGroup.Use(auth.RequireSession(h.Auth))
		}
		analyticsGroup.GET("", h.GetAnalytics)
		analyticsGroup.GET("/export", h.ExportAnalytics)
	}
}
