package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

const (
	defaultSessionLimit = 20
	maxSessionLimit     = 100
)

type SessionHandler struct {
	scans  ScanStore
	logger logger.Logger
}

func NewSessionHandler(scans ScanStore, log logger.Logger) *SessionHandler {
	return &SessionHandler{scans: scans, logger: log}
}

// List returns recent scan sessions with their result rollups, newest
// first.
func (h *SessionHandler) List(c *gin.Context) {
	category := c.DefaultQuery("category", repository.CategoryAll)
	limit := parseLimit(c.Query("limit"), defaultSessionLimit, maxSessionLimit)

	sessions, err := h.scans.Sessions(c.Request.Context(), category, limit)
	if err != nil {
		h.logger.Error("Failed to list scan sessions",
			logger.String("category", category),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to list scan sessions")
		return
	}

	respondData(c, sessions)
}

// parseLimit clamps a query-string limit to (0, max], falling back to
// def on absent or unparseable input.
func parseLimit(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
