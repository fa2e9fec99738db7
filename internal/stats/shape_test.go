package stats_test

import (
	"testing"
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/jonesrussell/keyword-monitor/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name                   string
		total, exposed, hidden int
		want                   models.ExposureStatus
	}{
		{"no urls", 0, 0, 0, models.StatusNoURL},
		{"one exposed wins", 3, 1, 2, models.StatusExposed},
		{"all exposed", 2, 2, 0, models.StatusExposed},
		{"only hidden", 2, 0, 2, models.StatusNotExposed},
		{"hidden plus unknown", 3, 0, 1, models.StatusNotExposed},
		{"all unknown", 2, 0, 0, models.StatusUnconfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stats.Classify(tt.total, tt.exposed, tt.hidden))
		})
	}
}

// Every combination of counts must map to exactly one status.
func TestClassifyTotal(t *testing.T) {
	for total := 0; total <= 4; total++ {
		for exposed := 0; exposed <= total; exposed++ {
			for hidden := 0; hidden+exposed <= total; hidden++ {
				status := stats.Classify(total, exposed, hidden)
				switch {
				case total == 0:
					assert.Equal(t, models.StatusNoURL, status)
				case exposed > 0:
					assert.Equal(t, models.StatusExposed, status)
				case hidden > 0:
					assert.Equal(t, models.StatusNotExposed, status)
				default:
					assert.Equal(t, models.StatusUnconfirmed, status)
				}
			}
		}
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0, stats.Rate(0, 0))
	assert.Equal(t, 0, stats.Rate(5, 0))
	assert.Equal(t, 100, stats.Rate(3, 3))
	assert.Equal(t, 50, stats.Rate(1, 2))
	assert.Equal(t, 33, stats.Rate(1, 3))
	assert.Equal(t, 67, stats.Rate(2, 3))
}

func TestBuildKeywordRecord(t *testing.T) {
	rank := 3
	code := 200
	scanned := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	earlier := scanned.Add(-time.Hour)

	keyword := repository.KeywordRow{
		ID:                  "kw-1",
		KeywordText:         "폐암 치료",
		CategoryName:        "cancer",
		CategoryDisplayName: "암",
		Priority:            1,
		IsActive:            true,
	}
	urls := []repository.URLScanRow{
		{
			ID:           "url-1",
			TargetURL:    "https://example.com",
			URLType:      models.URLTypeMonitor,
			IsActive:     true,
			IsExposed:    models.Exposed,
			ExposureRank: &rank,
			ResponseCode: &code,
			ScannedAt:    &scanned,
		},
		{
			ID:        "url-2",
			TargetURL: "https://example.com/other",
			URLType:   models.URLTypeMonitor,
			IsActive:  true,
			IsExposed: models.NotExposed,
			ScannedAt: &earlier,
		},
		{
			ID:        "url-3",
			TargetURL: "https://example.com/never",
			URLType:   models.URLTypeMonitor,
			IsActive:  true,
			IsExposed: models.ExposureUnknown,
		},
	}

	record := stats.BuildKeywordRecord(keyword, urls)

	assert.Equal(t, "kw-1", record.ID)
	assert.Equal(t, "폐암 치료", record.Keyword)
	assert.Equal(t, "cancer", record.Category)
	assert.Equal(t, "암", record.CategoryName)
	assert.Equal(t, 3, record.TotalURLs)
	assert.Equal(t, 1, record.ExposedURLs)
	assert.Equal(t, 1, record.HiddenURLs)
	assert.Equal(t, 1, record.UnknownURLs)
	assert.Equal(t, models.StatusExposed, record.ExposureStatus)
	assert.Equal(t, 33, record.ExposureRate)
	assert.True(t, record.HasExposedURL)
	require.NotNil(t, record.ScannedAt)
	assert.Equal(t, scanned, *record.ScannedAt)

	require.Len(t, record.URLs, 3)
	assert.Equal(t, "https://example.com", record.URLs[0].URL)
	require.NotNil(t, record.URLs[0].ExposureRank)
	assert.Equal(t, 3, *record.URLs[0].ExposureRank)
	assert.Nil(t, record.URLs[2].ScannedAt)
}

func TestBuildKeywordRecordNoURLs(t *testing.T) {
	record := stats.BuildKeywordRecord(repository.KeywordRow{ID: "kw-1"}, nil)

	assert.Equal(t, models.StatusNoURL, record.ExposureStatus)
	assert.Equal(t, 0, record.ExposureRate)
	assert.False(t, record.HasExposedURL)
	assert.Nil(t, record.ScannedAt)
	assert.NotNil(t, record.URLs)
	assert.Empty(t, record.URLs)
}

func TestEmptyKeywordRecord(t *testing.T) {
	keyword := repository.KeywordRow{
		ID:                  "kw-9",
		KeywordText:         "당뇨 식단",
		CategoryName:        "diabetes",
		CategoryDisplayName: "당뇨",
		Priority:            2,
		IsActive:            true,
	}

	record := stats.EmptyKeywordRecord(keyword)

	assert.Equal(t, "kw-9", record.ID)
	assert.Equal(t, "당뇨 식단", record.Keyword)
	assert.Equal(t, models.StatusNoURL, record.ExposureStatus)
	assert.Zero(t, record.TotalURLs)
	assert.NotNil(t, record.URLs)
	assert.Empty(t, record.URLs)
}
