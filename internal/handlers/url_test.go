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

func setupURLRouter(store *MockURLStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewURLHandler(store, testhelpers.NewTestLogger())
	router := gin.New()
	router.GET("/api/urls", handler.List)
	router.POST("/api/urls/manage", handler.Create)
	router.PUT("/api/urls/manage", handler.Update)
	router.DELETE("/api/urls/manage", handler.Delete)
	return router
}

func TestURLListEndpoint(t *testing.T) {
	store := new(MockURLStore)
	store.On("List", mock.Anything, "kw-1").Return([]repository.URLListRow{
		{ID: "url-1", KeywordID: "kw-1", TargetURL: "https://example.com", IsExposed: models.Exposed},
		{ID: "url-2", KeywordID: "kw-1", TargetURL: "https://example.com/b", IsExposed: models.ExposureUnknown},
	}, nil)

	router := setupURLRouter(store)
	w := doJSON(t, router, http.MethodGet, "/api/urls?keyword=kw-1", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID        string `json:"id"`
			IsExposed *bool  `json:"is_exposed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Data[0].IsExposed)
	assert.True(t, *resp.Data[0].IsExposed)
	// never-scanned URL serializes as null, not false
	assert.Nil(t, resp.Data[1].IsExposed)
}

func TestURLCreateEndpoint(t *testing.T) {
	store := new(MockURLStore)
	store.On("Create", mock.Anything, mock.MatchedBy(func(u *models.KeywordURL) bool {
		return u.KeywordID == "kw-1" && u.TargetURL == "https://example.com" && u.IsActive
	})).Return(nil)

	router := setupURLRouter(store)
	w := doJSON(t, router, http.MethodPost, "/api/urls/manage", gin.H{
		"keyword_id": "kw-1",
		"target_url": "https://example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestURLCreateDuplicatePerKeyword(t *testing.T) {
	store := new(MockURLStore)
	store.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("url %q: %w", "https://example.com", repository.ErrDuplicate))

	router := setupURLRouter(store)
	w := doJSON(t, router, http.MethodPost, "/api/urls/manage", gin.H{
		"keyword_id": "kw-1",
		"target_url": "https://example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestURLUpdateMergesCurrentRow(t *testing.T) {
	store := new(MockURLStore)
	store.On("GetByID", mock.Anything, "url-1").Return(&models.KeywordURL{
		ID:        "url-1",
		KeywordID: "kw-1",
		TargetURL: "https://example.com",
		URLType:   models.URLTypeMonitor,
		IsActive:  true,
	}, nil)
	store.On("Update", mock.Anything, mock.MatchedBy(func(u *models.KeywordURL) bool {
		return u.ID == "url-1" && u.TargetURL == "https://example.com" && !u.IsActive
	})).Return(nil)

	router := setupURLRouter(store)
	w := doJSON(t, router, http.MethodPut, "/api/urls/manage", gin.H{
		"url_id":    "url-1",
		"is_active": false,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestURLDeleteNotFound(t *testing.T) {
	store := new(MockURLStore)
	store.On("Delete", mock.Anything, "ghost").
		Return(fmt.Errorf("url %s: %w", "ghost", repository.ErrNotFound))

	router := setupURLRouter(store)
	w := doJSON(t, router, http.MethodDelete, "/api/urls/manage", gin.H{"url_id": "ghost"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
