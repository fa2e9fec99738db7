package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/jonesrussell/keyword-monitor/internal/stats"
)

const (
	defaultTrendDays  = 7
	maxTrendDays      = 90
	defaultTrendLimit = 50
	maxTrendLimit     = 200
)

type TrendHandler struct {
	scans  ScanStore
	logger logger.Logger
}

func NewTrendHandler(scans ScanStore, log logger.Logger) *TrendHandler {
	return &TrendHandler{scans: scans, logger: log}
}

// Trends returns the exposure change feed over the requested window plus
// a tally by change type.
func (h *TrendHandler) Trends(c *gin.Context) {
	category := c.DefaultQuery("category", repository.CategoryAll)
	days := parseLimit(c.Query("days"), defaultTrendDays, maxTrendDays)
	limit := parseLimit(c.Query("limit"), defaultTrendLimit, maxTrendLimit)

	rows, err := h.scans.Trends(c.Request.Context(), category, days, limit)
	if err != nil {
		h.logger.Error("Failed to load exposure trends",
			logger.String("category", category),
			logger.Int("days", days),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to load exposure trends")
		return
	}

	changes, summary := stats.BuildTrends(rows)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"trends":  changes,
			"summary": summary,
		},
		"timestamp": time.Now().UTC(),
	})
}
