// Package stats derives dashboard records from scan rows: per-keyword
// exposure shaping, category/global summaries, and the exposure change
// feed. It never touches the store; repositories feed it row structs.
package stats

import (
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

// URLRecord is the per-URL slice of a shaped keyword record.
type URLRecord struct {
	ID           string          `json:"id"`
	URL          string          `json:"url"`
	URLType      string          `json:"urlType"`
	IsActive     bool            `json:"isActive"`
	IsExposed    models.Exposure `json:"isExposed"`
	ExposureRank *int            `json:"exposureRank"`
	ResponseCode *int            `json:"responseCode"`
	ScannedAt    *time.Time      `json:"scannedAt"`
}

// KeywordRecord is one shaped row of the keyword dashboard.
type KeywordRecord struct {
	ID             string                `json:"id"`
	Keyword        string                `json:"keyword"`
	Category       string                `json:"category"`
	CategoryName   string                `json:"categoryName"`
	Priority       int                   `json:"priority"`
	IsActive       bool                  `json:"isActive"`
	TotalURLs      int                   `json:"totalUrls"`
	ExposedURLs    int                   `json:"exposedUrls"`
	HiddenURLs     int                   `json:"hiddenUrls"`
	UnknownURLs    int                   `json:"unknownUrls"`
	ExposureStatus models.ExposureStatus `json:"exposureStatus"`
	ExposureRate   int                   `json:"exposureRate"`
	HasExposedURL  bool                  `json:"hasExposedUrl"`
	ScannedAt      *time.Time            `json:"scannedAt"`
	URLs           []URLRecord           `json:"urls"`
}

// Rate returns round(n/d*100), or 0 when the denominator is 0.
func Rate(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(float64(n)/float64(d)*100 + 0.5)
}

// Classify derives the exposure status of a keyword from its URL counts.
// The mapping is total: no URLs, else exposed wins, else known-hidden,
// else everything unknown.
func Classify(total, exposed, hidden int) models.ExposureStatus {
	switch {
	case total == 0:
		return models.StatusNoURL
	case exposed > 0:
		return models.StatusExposed
	case hidden > 0:
		return models.StatusNotExposed
	default:
		return models.StatusUnconfirmed
	}
}

// BuildKeywordRecord shapes one keyword and its latest-scan URL rows into
// a dashboard record.
func BuildKeywordRecord(keyword repository.KeywordRow, urls []repository.URLScanRow) KeywordRecord {
	record := KeywordRecord{
		ID:           keyword.ID,
		Keyword:      keyword.KeywordText,
		Category:     keyword.CategoryName,
		CategoryName: keyword.CategoryDisplayName,
		Priority:     keyword.Priority,
		IsActive:     keyword.IsActive,
		URLs:         make([]URLRecord, 0, len(urls)),
	}

	for _, u := range urls {
		record.TotalURLs++
		switch u.IsExposed {
		case models.Exposed:
			record.ExposedURLs++
		case models.NotExposed:
			record.HiddenURLs++
		default:
			record.UnknownURLs++
		}
		if u.ScannedAt != nil && (record.ScannedAt == nil || u.ScannedAt.After(*record.ScannedAt)) {
			record.ScannedAt = u.ScannedAt
		}
		record.URLs = append(record.URLs, URLRecord{
			ID:           u.ID,
			URL:          u.TargetURL,
			URLType:      u.URLType,
			IsActive:     u.IsActive,
			IsExposed:    u.IsExposed,
			ExposureRank: u.ExposureRank,
			ResponseCode: u.ResponseCode,
			ScannedAt:    u.ScannedAt,
		})
	}

	record.ExposureStatus = Classify(record.TotalURLs, record.ExposedURLs, record.HiddenURLs)
	record.ExposureRate = Rate(record.ExposedURLs, record.TotalURLs)
	record.HasExposedURL = record.ExposedURLs > 0

	return record
}

// EmptyKeywordRecord is the zeroed substitute used when shaping one
// keyword fails; the batch must not abort over a single bad keyword.
func EmptyKeywordRecord(keyword repository.KeywordRow) KeywordRecord {
	return KeywordRecord{
		ID:             keyword.ID,
		Keyword:        keyword.KeywordText,
		Category:       keyword.CategoryName,
		CategoryName:   keyword.CategoryDisplayName,
		Priority:       keyword.Priority,
		IsActive:       keyword.IsActive,
		ExposureStatus: models.StatusNoURL,
		URLs:           make([]URLRecord, 0),
	}
}
