package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/events"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

type CategoryHandler struct {
	repo      CategoryStore
	publisher *events.Publisher
	logger    logger.Logger
}

func NewCategoryHandler(repo CategoryStore, publisher *events.Publisher, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

// List returns all categories with keyword/url counts.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", logger.Error(err))
		respondRepoError(c, err, "Failed to list categories")
		return
	}

	respondData(c, categories)
}

type categoryCreateRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		respondValidationError(c, "name is required")
		return
	}

	category := models.Category{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if category.DisplayName == "" {
		category.DisplayName = category.Name
	}

	if err := h.repo.Create(c.Request.Context(), &category); err != nil {
		h.logger.Error("Failed to create category",
			logger.String("category_name", category.Name),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to create category")
		return
	}

	h.logger.Info("Category created",
		logger.String("category_id", category.ID),
		logger.String("category_name", category.Name),
	)
	h.publisher.PublishAsync(events.Event{
		EventType:  events.CategoryCreated,
		EntityID:   category.ID,
		EntityName: category.Name,
	})

	respondData(c, category)
}

type categoryUpdateRequest struct {
	CategoryID  string  `json:"category_id"`
	Name        *string `json:"name"`
	DisplayName *string `json:"display_name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.CategoryID == "" {
		respondValidationError(c, "category_id is required")
		return
	}

	current, err := h.currentCategory(c, req.CategoryID)
	if err != nil {
		respondRepoError(c, err, "Category not found")
		return
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.DisplayName != nil {
		current.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := h.repo.Update(c.Request.Context(), current); err != nil {
		h.logger.Error("Failed to update category",
			logger.String("category_id", req.CategoryID),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to update category")
		return
	}

	h.publisher.PublishAsync(events.Event{
		EventType:  events.CategoryUpdated,
		EntityID:   current.ID,
		EntityName: current.Name,
	})

	respondData(c, current)
}

type categoryDeleteRequest struct {
	CategoryID string `json:"category_id"`
}

// Delete removes a category. It fails with a conflict while the category
// still owns keywords.
func (h *CategoryHandler) Delete(c *gin.Context) {
	var req categoryDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if req.CategoryID == "" {
		respondValidationError(c, "category_id is required")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), req.CategoryID); err != nil {
		h.logger.Error("Failed to delete category",
			logger.String("category_id", req.CategoryID),
			logger.Error(err),
		)
		respondRepoError(c, err, "Failed to delete category")
		return
	}

	h.logger.Info("Category deleted", logger.String("category_id", req.CategoryID))
	h.publisher.PublishAsync(events.Event{
		EventType: events.CategoryDeleted,
		EntityID:  req.CategoryID,
	})

	respondMessage(c, 200, "Category deleted")
}

// currentCategory fetches the category being updated by id. The list
// endpoint keys categories by name; updates arrive with the id, so scan
// the listing.
func (h *CategoryHandler) currentCategory(c *gin.Context, id string) (*models.Category, error) {
	categories, err := h.repo.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, repository.ErrNotFound
}
