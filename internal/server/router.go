// Package server assembles the HTTP engine for the dashboard daemon.
package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/celerix-dev/ivr-reports/internal/api"
	"github.com/celerix-dev/ivr-reports/internal/metrics"
)

// NewRouter wires the API routes and middleware onto a fresh gin engine.
func NewRouter(h *api.Handler, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger), CORS())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/healthz", h.Healthz)
		apiGroup.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

		apiGroup.POST("/login", h.Login)
		apiGroup.POST("/logout", h.Logout)

		authed := apiGroup.Group("", h.RequireSession)
		authed.GET("/session", h.Session)
		authed.GET("/records", h.Records)
		authed.POST("/records/reload", h.Reload)
		authed.PUT("/filters", h.SetFilters)
		authed.DELETE("/filters", h.ClearFilters)
		authed.GET("/stats", h.Stats)
		authed.GET("/export", h.Export)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API route not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
