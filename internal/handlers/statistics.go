package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/jonesrussell/keyword-monitor/internal/stats"
)

type StatisticsHandler struct {
	scans  ScanStore
	logger logger.Logger
}

func NewStatisticsHandler(scans ScanStore, log logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{scans: scans, logger: log}
}

// Statistics returns the exposure summary for the requested category, the
// per-category breakdown, and the global summary. The breakdown is always
// computed over all keywords so the dashboard can switch categories
// without another round trip.
func (h *StatisticsHandler) Statistics(c *gin.Context) {
	category := c.DefaultQuery("category", repository.CategoryAll)

	rows, err := h.scans.KeywordStats(c.Request.Context(), repository.CategoryAll)
	if err != nil {
		h.logger.Error("Failed to load keyword statistics", logger.Error(err))
		respondRepoError(c, err, "Failed to load statistics")
		return
	}

	allSummary, categoryData := stats.BuildStatistics(rows)

	summary := allSummary
	if category != repository.CategoryAll {
		// Missing category yields a valid zeroed summary.
		summary = categoryData[category]
		if summary.ExposureStatsData == nil {
			summary = stats.BuildSummary(nil)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"summary":      summary,
			"categoryData": categoryData,
			"allSummary":   allSummary,
			"timestamp":    time.Now().UTC(),
		},
	})
}
