package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

type URLHandler struct {
	repo   URLStore
	logger logger.Logger
}

func NewURLHandler(repo URLStore, log logger.Logger) *URLHandler {
	return &URLHandler{repo: repo, logger: log}
}

// List returns URLs with their latest completed-scan outcome, optionally
// filtered by keyword id.
func (h *URLHandler) List(c *gin.Context) {
	keyword := c.DefaultQuery("keyword", repository.KeywordAll)

	urls, err := h.repo.List(c.Request.Context(), keyword)
	if err != nil {
		h.logger.Error("Failed to list URLs",
			logger.String("keyword", keyword),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to list URLs")
		return
	}

	respondData(c, urls)
}

type urlCreateRequest struct {
	KeywordID string `json:"keyword_id"`
	TargetURL string `json:"target_url"`
	URLType   string `json:"url_type"`
	IsActive  *bool  `json:"is_active"`
}

func (h *URLHandler) Create(c *gin.Context) {
	var req urlCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.KeywordID == "" {
		respondValidationError(c, "keyword_id is required")
		return
	}
	if req.TargetURL == "" {
		respondValidationError(c, "target_url is required")
		return
	}

	url := models.KeywordURL{
		KeywordID: req.KeywordID,
		TargetURL: req.TargetURL,
		URLType:   req.URLType,
		IsActive:  true,
	}
	if req.IsActive != nil {
		url.IsActive = *req.IsActive
	}

	if err := h.repo.Create(c.Request.Context(), &url); err != nil {
		h.logger.Error("Failed to create URL",
			logger.String("keyword_id", req.KeywordID),
			logger.String("target_url", req.TargetURL),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to create URL")
		return
	}

	respondData(c, url)
}

type urlUpdateRequest struct {
	URLID     string  `json:"url_id"`
	TargetURL *string `json:"target_url"`
	URLType   *string `json:"url_type"`
	IsActive  *bool   `json:"is_active"`
}

func (h *URLHandler) Update(c *gin.Context) {
	var req urlUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.URLID == "" {
		respondValidationError(c, "url_id is required")
		return
	}

	url, err := h.repo.GetByID(c.Request.Context(), req.URLID)
	if err != nil {
		respondRepoError(c, err, "URL not found")
		return
	}
	if req.TargetURL != nil {
		url.TargetURL = *req.TargetURL
	}
	if req.URLType != nil {
		url.URLType = *req.URLType
	}
	if req.IsActive != nil {
		url.IsActive = *req.IsActive
	}

	if err := h.repo.Update(c.Request.Context(), url); err != nil {
		h.logger.Error("Failed to update URL",
			logger.String("url_id", req.URLID),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to update URL")
		return
	}

	respondData(c, url)
}

type urlDeleteRequest struct {
	URLID string `json:"url_id"`
}

func (h *URLHandler) Delete(c *gin.Context) {
	var req urlDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.URLID == "" {
		respondValidationError(c, "url_id is required")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), req.URLID); err != nil {
		h.logger.Error("Failed to delete URL",
			logger.String("url_id", req.URLID),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to delete URL")
		return
	}

	respondMessage(c, 200, "URL deleted")
}
