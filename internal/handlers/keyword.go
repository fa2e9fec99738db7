package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/events"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/jonesrussell/keyword-monitor/internal/stats"
)

type KeywordHandler struct {
	keywords   KeywordStore
	categories CategoryStore
	urls       URLStore
	publisher  *events.Publisher
	logger     logger.Logger
}

func NewKeywordHandler(keywords KeywordStore, categories CategoryStore, urls URLStore, publisher *events.Publisher, log logger.Logger) *KeywordHandler {
	return &KeywordHandler{
		keywords:   keywords,
		categories: categories,
		urls:       urls,
		publisher:  publisher,
		logger:     log,
	}
}

// List returns shaped keyword records for the dashboard, optionally
// filtered by category name. A keyword whose URL lookup fails is returned
// as a zeroed record instead of failing the whole listing.
func (h *KeywordHandler) List(c *gin.Context) {
	category := c.DefaultQuery("category", repository.CategoryAll)

	keywords, err := h.keywords.ListActive(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("Failed to list keywords",
			logger.String("category", category),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to list keywords")
		return
	}

	records := make([]stats.KeywordRecord, 0, len(keywords))
	for _, kw := range keywords {
		urls, err := h.keywords.URLsWithLatestScan(c.Request.Context(), kw.ID)
		if err != nil {
			h.logger.Warn("Failed to load URLs for keyword, returning empty record",
				logger.String("keyword_id", kw.ID),
				logger.String("keyword", kw.KeywordText),
				logger.Error(err),
			)
			records = append(records, stats.EmptyKeywordRecord(kw))
			continue
		}
		records = append(records, stats.BuildKeywordRecord(kw, urls))
	}

	respondData(c, records)
}

type keywordCreateRequest struct {
	CategoryName string   `json:"category_name"`
	KeywordText  string   `json:"keyword_text"`
	Priority     *int     `json:"priority"`
	URLs         []string `json:"urls"`
}

// Create registers a keyword, optionally with an initial URL set.
func (h *KeywordHandler) Create(c *gin.Context) {
	var req keywordCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.KeywordText == "" {
		respondValidationError(c, "keyword_text is required")
		return
	}
	if req.CategoryName == "" {
		respondValidationError(c, "category_name is required")
		return
	}

	priority := models.PriorityDefault
	if req.Priority != nil {
		priority = *req.Priority
	}
	if !models.ValidPriority(priority) {
		respondValidationError(c, "priority must be between 1 and 5")
		return
	}

	category, err := h.categories.GetByName(c.Request.Context(), req.CategoryName)
	if err != nil {
		respondRepoError(c, err, "Category not found: "+req.CategoryName)
		return
	}

	keyword := models.Keyword{
		CategoryID:  category.ID,
		KeywordText: req.KeywordText,
		Priority:    priority,
		IsActive:    true,
	}
	if err := h.keywords.Create(c.Request.Context(), &keyword); err != nil {
		h.logger.Error("Failed to create keyword",
			logger.String("keyword", req.KeywordText),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to create keyword")
		return
	}

	added := 0
	for _, target := range req.URLs {
		if target == "" {
			continue
		}
		url := models.KeywordURL{
			KeywordID: keyword.ID,
			TargetURL: target,
			URLType:   models.URLTypeMonitor,
			IsActive:  true,
		}
		if err := h.urls.Create(c.Request.Context(), &url); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			h.logger.Error("Failed to attach URL to keyword",
				logger.String("keyword_id", keyword.ID),
				logger.String("target_url", target),
				logger.Error(err),
			)
			respondRepoError(c, err, "Keyword created but URL registration failed")
			return
		}
		added++
	}

	h.logger.Info("Keyword created",
		logger.String("keyword_id", keyword.ID),
		logger.String("keyword", keyword.KeywordText),
		logger.String("category", category.Name),
		logger.Int("urls_added", added),
	)
	h.publisher.PublishAsync(events.Event{
		EventType:    events.KeywordCreated,
		EntityID:     keyword.ID,
		EntityName:   keyword.KeywordText,
		CategoryName: category.Name,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"keyword":    keyword,
			"urls_added": added,
		},
	})
}

type keywordUpdateRequest struct {
	KeywordID    string  `json:"keyword_id"`
	KeywordText  *string `json:"keyword_text"`
	CategoryName *string `json:"category_name"`
	Priority     *int    `json:"priority"`
	IsActive     *bool   `json:"is_active"`
}

func (h *KeywordHandler) Update(c *gin.Context) {
	var req keywordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.KeywordID == "" {
		respondValidationError(c, "keyword_id is required")
		return
	}

	keyword, err := h.keywords.GetByID(c.Request.Context(), req.KeywordID)
	if err != nil {
		respondRepoError(c, err, "Keyword not found")
		return
	}

	if req.KeywordText != nil {
		keyword.KeywordText = *req.KeywordText
	}
	if req.CategoryName != nil {
		category, err := h.categories.GetByName(c.Request.Context(), *req.CategoryName)
		if err != nil {
			respondRepoError(c, err, "Category not found: "+*req.CategoryName)
			return
		}
		keyword.CategoryID = category.ID
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			respondValidationError(c, "priority must be between 1 and 5")
			return
		}
		keyword.Priority = *req.Priority
	}
	if req.IsActive != nil {
		keyword.IsActive = *req.IsActive
	}

	if err := h.keywords.Update(c.Request.Context(), keyword); err != nil {
		h.logger.Error("Failed to update keyword",
			logger.String("keyword_id", req.KeywordID),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to update keyword")
		return
	}

	h.publisher.PublishAsync(events.Event{
		EventType:  events.KeywordUpdated,
		EntityID:   keyword.ID,
		EntityName: keyword.KeywordText,
	})

	respondData(c, keyword)
}

type keywordDeleteRequest struct {
	KeywordID string `json:"keyword_id"`
}

// Delete removes a keyword. URLs and scan results cascade at the store.
func (h *KeywordHandler) Delete(c *gin.Context) {
	var req keywordDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.KeywordID == "" {
		respondValidationError(c, "keyword_id is required")
		return
	}

	if err := h.keywords.Delete(c.Request.Context(), req.KeywordID); err != nil {
		h.logger.Error("Failed to delete keyword",
			logger.String("keyword_id", req.KeywordID),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to delete keyword")
		return
	}

	h.logger.Info("Keyword deleted", logger.String("keyword_id", req.KeywordID))
	h.publisher.PublishAsync(events.Event{
		EventType: events.KeywordDeleted,
		EntityID:  req.KeywordID,
	})

	respondMessage(c, http.StatusOK, "Keyword deleted")
}
