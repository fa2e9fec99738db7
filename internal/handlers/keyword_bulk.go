package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/exporter"
	"github.com/jonesrussell/keyword-monitor/internal/importer"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/jonesrussell/keyword-monitor/internal/stats"
)

// bulkRequest accepts keywords either as bare strings or as objects with
// per-entry overrides. Shared fields apply to entries that omit them.
type bulkRequest struct {
	Keywords     []json.RawMessage `json:"keywords"`
	CategoryName string            `json:"category_name"`
	Priority     *int              `json:"priority"`
	URLs         []string          `json:"urls"`
}

type bulkEntryObject struct {
	KeywordText  string   `json:"keyword_text"`
	Keyword      string   `json:"keyword"`
	CategoryName string   `json:"category_name"`
	Priority     *int     `json:"priority"`
	URLs         []string `json:"urls"`
}

// Bulk registers up to 500 keywords in one request. Per-entry failures
// (unknown category, duplicates) are reported in the result without
// aborting the rest of the batch.
func (h *KeywordHandler) Bulk(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Keywords) == 0 {
		respondValidationError(c, "keywords is required")
		return
	}
	if len(req.Keywords) > repository.BulkLimit {
		respondValidationError(c, fmt.Sprintf("at most %d keywords per request", repository.BulkLimit))
		return
	}

	sharedPriority := models.PriorityDefault
	if req.Priority != nil {
		sharedPriority = *req.Priority
	}
	if !models.ValidPriority(sharedPriority) {
		respondValidationError(c, "priority must be between 1 and 5")
		return
	}

	entries := make([]repository.BulkEntry, 0, len(req.Keywords))
	for i, raw := range req.Keywords {
		entry, err := decodeBulkEntry(raw, req.CategoryName, sharedPriority, req.URLs)
		if err != nil {
			respondValidationError(c, fmt.Sprintf("keywords[%d]: %v", i, err))
			return
		}
		entries = append(entries, entry)
	}

	result, err := h.keywords.BulkCreate(c.Request.Context(), entries)
	if err != nil {
		h.logger.Error("Bulk keyword registration failed", logger.Error(err))
		respondRepoError(c, err, "Bulk keyword registration failed")
		return
	}

	h.logger.Info("Bulk keyword registration finished",
		logger.Int("total", result.Total),
		logger.Int("successful", result.Successful),
		logger.Int("failed", result.Failed),
	)

	respondData(c, result)
}

func decodeBulkEntry(raw json.RawMessage, sharedCategory string, sharedPriority int, sharedURLs []string) (repository.BulkEntry, error) {
	entry := repository.BulkEntry{
		CategoryName: sharedCategory,
		Priority:     sharedPriority,
		URLs:         sharedURLs,
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		entry.KeywordText = text
		if entry.KeywordText == "" {
			return entry, fmt.Errorf("keyword text is empty")
		}
		return entry, nil
	}

	var obj bulkEntryObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return entry, fmt.Errorf("must be a string or an object: %w", err)
	}
	entry.KeywordText = obj.KeywordText
	if entry.KeywordText == "" {
		entry.KeywordText = obj.Keyword
	}
	if entry.KeywordText == "" {
		return entry, fmt.Errorf("keyword text is empty")
	}
	if obj.CategoryName != "" {
		entry.CategoryName = obj.CategoryName
	}
	if obj.Priority != nil {
		if !models.ValidPriority(*obj.Priority) {
			return entry, fmt.Errorf("priority must be between 1 and 5")
		}
		entry.Priority = *obj.Priority
	}
	if len(obj.URLs) > 0 {
		entry.URLs = obj.URLs
	}
	return entry, nil
}

// Import parses an uploaded Excel workbook and registers its keywords
// through the same bulk path as the JSON endpoint.
func (h *KeywordHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondValidationError(c, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondValidationError(c, "Failed to open uploaded file: "+err.Error())
		return
	}
	defer f.Close()

	entries, rowErrors, err := importer.Parse(f)
	if err != nil {
		respondValidationError(c, "Failed to parse workbook: "+err.Error())
		return
	}
	if len(entries) == 0 && len(rowErrors) == 0 {
		respondValidationError(c, "Workbook contains no keyword rows")
		return
	}
	if len(entries) > repository.BulkLimit {
		respondValidationError(c, fmt.Sprintf("at most %d keywords per import", repository.BulkLimit))
		return
	}

	result := &repository.BulkResult{Errors: make([]string, 0)}
	if len(entries) > 0 {
		result, err = h.keywords.BulkCreate(c.Request.Context(), entries)
		if err != nil {
			h.logger.Error("Excel keyword import failed",
				logger.String("filename", fileHeader.Filename),
				logger.Error(err),
			)
			respondRepoError(c, err, "Excel keyword import failed")
			return
		}
	}
	for _, rowErr := range rowErrors {
		result.Total++
		result.Failed++
		if len(result.Errors) < 10 {
			result.Errors = append(result.Errors, rowErr)
		}
	}

	h.logger.Info("Excel keyword import finished",
		logger.String("filename", fileHeader.Filename),
		logger.Int("total", result.Total),
		logger.Int("successful", result.Successful),
		logger.Int("failed", result.Failed),
	)

	respondData(c, result)
}

// Export streams the keyword dashboard for a category as an xlsx
// attachment.
func (h *KeywordHandler) Export(c *gin.Context) {
	category := c.DefaultQuery("category", repository.CategoryAll)

	keywords, err := h.keywords.ListActive(c.Request.Context(), category)
	if err != nil {
		respondRepoError(c, err, "Failed to list keywords")
		return
	}

	records := make([]stats.KeywordRecord, 0, len(keywords))
	for _, kw := range keywords {
		urls, err := h.keywords.URLsWithLatestScan(c.Request.Context(), kw.ID)
		if err != nil {
			records = append(records, stats.EmptyKeywordRecord(kw))
			continue
		}
		records = append(records, stats.BuildKeywordRecord(kw, urls))
	}

	workbook, err := exporter.BuildWorkbook(records)
	if err != nil {
		h.logger.Error("Failed to build export workbook", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to build export workbook",
			"error":   err.Error(),
		})
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("keywords_%s_%s.xlsx", category, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("Failed to stream export workbook", logger.Error(err))
	}
}
