// Package api wires the HTTP routes of the keyword-monitor dashboard.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/events"
	"github.com/jonesrussell/keyword-monitor/internal/handlers"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/metrics"
)

// Stores bundles the repositories the API serves from.
type Stores struct {
	Categories handlers.CategoryStore
	Keywords   handlers.KeywordStore
	URLs       handlers.URLStore
	Scans      handlers.ScanStore
}

// RegisterRoutes mounts all dashboard endpoints on the router.
func RegisterRoutes(router *gin.Engine, stores Stores, publisher *events.Publisher, m *metrics.Metrics, log logger.Logger) {
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", m.Handler())
	}

	categoryHandler := handlers.NewCategoryHandler(stores.Categories, publisher, log)
	keywordHandler := handlers.NewKeywordHandler(stores.Keywords, stores.Categories, stores.URLs, publisher, log)
	urlHandler := handlers.NewURLHandler(stores.URLs, log)
	statisticsHandler := handlers.NewStatisticsHandler(stores.Scans, log)
	sessionHandler := handlers.NewSessionHandler(stores.Scans, log)
	trendHandler := handlers.NewTrendHandler(stores.Scans, log)

	api := router.Group("/api")

	api.GET("/categories", categoryHandler.List)
	api.POST("/categories/manage", categoryHandler.Create)
	api.PUT("/categories/manage", categoryHandler.Update)
	api.DELETE("/categories/manage", categoryHandler.Delete)

	api.GET("/keywords", keywordHandler.List)
	api.POST("/keywords/manage", keywordHandler.Create)
	api.PUT("/keywords/manage", keywordHandler.Update)
	api.DELETE("/keywords/manage", keywordHandler.Delete)
	api.POST("/keywords/bulk", keywordHandler.Bulk)
	api.POST("/keywords/import", keywordHandler.Import)
	api.GET("/keywords/export", keywordHandler.Export)

	api.GET("/urls", urlHandler.List)
	api.POST("/urls/manage", urlHandler.Create)
	api.PUT("/urls/manage", urlHandler.Update)
	api.DELETE("/urls/manage", urlHandler.Delete)

	api.GET("/statistics", statisticsHandler.Statistics)
	api.GET("/scan-sessions", sessionHandler.List)
	api.GET("/exposure-trends", trendHandler.Trends)
}
