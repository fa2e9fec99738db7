package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/handlers"
	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/jonesrussell/keyword-monitor/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCategoryRouter(store *MockCategoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewCategoryHandler(store, nil, testhelpers.NewTestLogger())
	router := gin.New()
	router.GET("/api/categories", handler.List)
	router.POST("/api/categories/manage", handler.Create)
	router.PUT("/api/categories/manage", handler.Update)
	router.DELETE("/api/categories/manage", handler.Delete)
	return router
}

func TestCategoryListEndpoint(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("List", mock.Anything).Return([]models.Category{
		{ID: "cat-1", Name: "cancer", DisplayName: "암", KeywordCount: 5, URLCount: 12},
	}, nil)

	router := setupCategoryRouter(store)
	w := doJSON(t, router, http.MethodGet, "/api/categories", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    []models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 5, resp.Data[0].KeywordCount)
}

func TestCategoryCreateEndpoint(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.Name == "cancer" && c.DisplayName == "암" && c.IsActive
	})).Return(nil)

	router := setupCategoryRouter(store)
	w := doJSON(t, router, http.MethodPost, "/api/categories/manage", gin.H{
		"name":         "cancer",
		"display_name": "암",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestCategoryCreateRequiresName(t *testing.T) {
	router := setupCategoryRouter(new(MockCategoryStore))
	w := doJSON(t, router, http.MethodPost, "/api/categories/manage", gin.H{"display_name": "암"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryCreateDuplicateEndpoint(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("category %q: %w", "cancer", repository.ErrDuplicate))

	router := setupCategoryRouter(store)
	w := doJSON(t, router, http.MethodPost, "/api/categories/manage", gin.H{"name": "cancer"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryDeleteWithKeywordsIsRejected(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("Delete", mock.Anything, "cat-1").
		Return(fmt.Errorf("3 keywords attached: %w", repository.ErrCategoryHasKeywords))

	router := setupCategoryRouter(store)
	w := doJSON(t, router, http.MethodDelete, "/api/categories/manage", gin.H{"category_id": "cat-1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "keywords attached")
}

func TestCategoryUpdatePartialFields(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("List", mock.Anything).Return([]models.Category{
		{ID: "cat-1", Name: "cancer", DisplayName: "암", Description: "기존 설명", IsActive: true},
	}, nil)
	store.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		// untouched fields keep their values
		return c.ID == "cat-1" && c.DisplayName == "암(전체)" && c.Name == "cancer" && c.Description == "기존 설명"
	})).Return(nil)

	router := setupCategoryRouter(store)
	w := doJSON(t, router, http.MethodPut, "/api/categories/manage", gin.H{
		"category_id":  "cat-1",
		"display_name": "암(전체)",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestCategoryUpdateUnknownID(t *testing.T) {
	store := new(MockCategoryStore)
	store.On("List", mock.Anything).Return([]models.Category{}, nil)

	router := setupCategoryRouter(store)
	w := doJSON(t, router, http.MethodPut, "/api/categories/manage", gin.H{
		"category_id": "ghost",
		"name":        "renamed",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
