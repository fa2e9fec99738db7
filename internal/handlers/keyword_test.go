package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
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

func setupKeywordRouter(keywords *MockKeywordStore, categories *MockCategoryStore, urls *MockURLStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewKeywordHandler(keywords, categories, urls, nil, testhelpers.NewTestLogger())
	router := gin.New()
	router.GET("/api/keywords", handler.List)
	router.POST("/api/keywords/manage", handler.Create)
	router.PUT("/api/keywords/manage", handler.Update)
	router.DELETE("/api/keywords/manage", handler.Delete)
	router.POST("/api/keywords/bulk", handler.Bulk)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestKeywordListShapesRecords(t *testing.T) {
	keywords := new(MockKeywordStore)
	rank := 3

	keywords.On("ListActive", mock.Anything, "cancer").Return([]repository.KeywordRow{
		{ID: "kw-1", KeywordText: "폐암 치료", CategoryName: "cancer", CategoryDisplayName: "암", Priority: 1, IsActive: true},
	}, nil)
	keywords.On("URLsWithLatestScan", mock.Anything, "kw-1").Return([]repository.URLScanRow{
		{ID: "url-1", TargetURL: "https://example.com", URLType: models.URLTypeMonitor, IsActive: true, IsExposed: models.Exposed, ExposureRank: &rank},
	}, nil)

	router := setupKeywordRouter(keywords, new(MockCategoryStore), new(MockURLStore))
	w := doJSON(t, router, http.MethodGet, "/api/keywords?category=cancer", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Keyword        string `json:"keyword"`
			ExposureStatus string `json:"exposureStatus"`
			TotalURLs      int    `json:"totalUrls"`
			ExposedURLs    int    `json:"exposedUrls"`
			URLs           []struct {
				ExposureRank *int `json:"exposureRank"`
			} `json:"urls"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "폐암 치료", resp.Data[0].Keyword)
	assert.Equal(t, "노출됨", resp.Data[0].ExposureStatus)
	assert.Equal(t, 1, resp.Data[0].TotalURLs)
	assert.Equal(t, 1, resp.Data[0].ExposedURLs)
	require.Len(t, resp.Data[0].URLs, 1)
	require.NotNil(t, resp.Data[0].URLs[0].ExposureRank)
	assert.Equal(t, 3, *resp.Data[0].URLs[0].ExposureRank)

	keywords.AssertExpectations(t)
}

// One keyword's URL failure must not abort the listing; the keyword comes
// back as a zeroed record.
func TestKeywordListIsolatesPerKeywordFailures(t *testing.T) {
	keywords := new(MockKeywordStore)

	keywords.On("ListActive", mock.Anything, "all").Return([]repository.KeywordRow{
		{ID: "kw-1", KeywordText: "정상", CategoryName: "cancer"},
		{ID: "kw-2", KeywordText: "고장", CategoryName: "cancer"},
	}, nil)
	keywords.On("URLsWithLatestScan", mock.Anything, "kw-1").Return([]repository.URLScanRow{
		{ID: "url-1", TargetURL: "https://example.com", IsExposed: models.Exposed},
	}, nil)
	keywords.On("URLsWithLatestScan", mock.Anything, "kw-2").Return(nil, errors.New("connection reset"))

	router := setupKeywordRouter(keywords, new(MockCategoryStore), new(MockURLStore))
	w := doJSON(t, router, http.MethodGet, "/api/keywords", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID             string `json:"id"`
			ExposureStatus string `json:"exposureStatus"`
			TotalURLs      int    `json:"totalUrls"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "노출됨", resp.Data[0].ExposureStatus)
	assert.Equal(t, "kw-2", resp.Data[1].ID)
	assert.Equal(t, "URL 없음", resp.Data[1].ExposureStatus)
	assert.Zero(t, resp.Data[1].TotalURLs)
}

func TestKeywordCreateWithURLs(t *testing.T) {
	keywords := new(MockKeywordStore)
	categories := new(MockCategoryStore)
	urls := new(MockURLStore)

	categories.On("GetByName", mock.Anything, "cancer").Return(&models.Category{ID: "cat-1", Name: "cancer"}, nil)
	keywords.On("Create", mock.Anything, mock.MatchedBy(func(k *models.Keyword) bool {
		return k.KeywordText == "폐암 치료" && k.CategoryID == "cat-1" && k.Priority == 1
	})).Return(nil)
	urls.On("Create", mock.Anything, mock.MatchedBy(func(u *models.KeywordURL) bool {
		return u.TargetURL == "https://example.com"
	})).Return(nil)

	router := setupKeywordRouter(keywords, categories, urls)
	w := doJSON(t, router, http.MethodPost, "/api/keywords/manage", gin.H{
		"category_name": "cancer",
		"keyword_text":  "폐암 치료",
		"priority":      1,
		"urls":          []string{"https://example.com"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	keywords.AssertExpectations(t)
	urls.AssertExpectations(t)
}

func TestKeywordCreateValidation(t *testing.T) {
	router := setupKeywordRouter(new(MockKeywordStore), new(MockCategoryStore), new(MockURLStore))

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing keyword text", gin.H{"category_name": "cancer"}},
		{"missing category", gin.H{"keyword_text": "폐암 치료"}},
		{"priority out of range", gin.H{"category_name": "cancer", "keyword_text": "폐암 치료", "priority": 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/keywords/manage", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestKeywordCreateUnknownCategory(t *testing.T) {
	categories := new(MockCategoryStore)
	categories.On("GetByName", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("category %q: %w", "ghost", repository.ErrNotFound))

	router := setupKeywordRouter(new(MockKeywordStore), categories, new(MockURLStore))
	w := doJSON(t, router, http.MethodPost, "/api/keywords/manage", gin.H{
		"category_name": "ghost",
		"keyword_text":  "폐암 치료",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKeywordDelete(t *testing.T) {
	keywords := new(MockKeywordStore)
	keywords.On("Delete", mock.Anything, "kw-1").Return(nil)

	router := setupKeywordRouter(keywords, new(MockCategoryStore), new(MockURLStore))
	w := doJSON(t, router, http.MethodDelete, "/api/keywords/manage", gin.H{"keyword_id": "kw-1"})

	assert.Equal(t, http.StatusOK, w.Code)
	keywords.AssertExpectations(t)
}

func TestKeywordBulkMixedEntryForms(t *testing.T) {
	keywords := new(MockKeywordStore)
	keywords.On("BulkCreate", mock.Anything, mock.MatchedBy(func(entries []repository.BulkEntry) bool {
		return len(entries) == 2 &&
			entries[0].KeywordText == "폐암 치료" &&
			entries[0].CategoryName == "cancer" &&
			entries[0].Priority == 2 &&
			entries[1].KeywordText == "폐암 증상" &&
			entries[1].CategoryName == "oncology" &&
			entries[1].Priority == 1
	})).Return(&repository.BulkResult{Successful: 2, Total: 2, Errors: []string{}}, nil)

	router := setupKeywordRouter(keywords, new(MockCategoryStore), new(MockURLStore))
	w := doJSON(t, router, http.MethodPost, "/api/keywords/bulk", gin.H{
		"category_name": "cancer",
		"priority":      2,
		"keywords": []any{
			"폐암 치료",
			gin.H{"keyword_text": "폐암 증상", "category_name": "oncology", "priority": 1},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data repository.BulkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Successful)
	keywords.AssertExpectations(t)
}

func TestKeywordBulkRejectsOversizedRequest(t *testing.T) {
	router := setupKeywordRouter(new(MockKeywordStore), new(MockCategoryStore), new(MockURLStore))

	oversized := make([]any, repository.BulkLimit+1)
	for i := range oversized {
		oversized[i] = fmt.Sprintf("keyword-%d", i)
	}

	w := doJSON(t, router, http.MethodPost, "/api/keywords/bulk", gin.H{
		"category_name": "cancer",
		"keywords":      oversized,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestKeywordBulkRejectsEmptyKeyword(t *testing.T) {
	router := setupKeywordRouter(new(MockKeywordStore), new(MockCategoryStore), new(MockURLStore))

	w := doJSON(t, router, http.MethodPost, "/api/keywords/bulk", gin.H{
		"category_name": "cancer",
		"keywords":      []any{""},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
