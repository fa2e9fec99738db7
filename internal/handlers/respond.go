// Package handlers implements the HTTP JSON API of the keyword-monitor
// dashboard. All responses carry a success flag; failures map repository
// sentinels to 400/404 and store errors to 500 with the underlying error
// text attached (acceptable for an admin-only tool).
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC(),
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
	})
}

func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

// respondRepoError maps repository sentinel errors onto the API error
// taxonomy: not-found 404, duplicate/conflict 400, anything else 500.
func respondRepoError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": message,
			"error":   err.Error(),
		})
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, repository.ErrCategoryHasKeywords):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": message,
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": message,
			"error":   err.Error(),
		})
	}
}
