package stats

import (
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

// NameValue is one slice of the exposure pie chart.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Summary aggregates keyword exposure state for one category, or globally.
type Summary struct {
	TotalKeywords       int         `json:"totalKeywords"`
	KeywordsWithURLs    int         `json:"keywordsWithUrls"`
	ExposedKeywords     int         `json:"exposedKeywords"`
	NotExposedKeywords  int         `json:"notExposedKeywords"`
	NoURLKeywords       int         `json:"noUrlKeywords"`
	TotalURLs           int         `json:"totalUrls"`
	ExposedURLs         int         `json:"exposedUrls"`
	HiddenURLs          int         `json:"hiddenUrls"`
	ErrorURLs           int         `json:"errorUrls"`
	ExposureSuccessRate int         `json:"exposureSuccessRate"`
	AverageExposureRate int         `json:"averageExposureRate"`
	LastScanTime        *time.Time  `json:"lastScanTime"`
	ExposureStatsData   []NameValue `json:"exposureStatsData"`
}

// BuildSummary sums per-keyword aggregates into one summary. The success
// rate denominator is keywords-with-urls: a keyword without URLs is
// excluded from the rate, not counted as a failure. The average exposure
// rate is the mean over keywords with at least one scanned URL.
func BuildSummary(rows []repository.KeywordStatRow) Summary {
	var s Summary
	rateSum, rated := 0, 0

	for _, row := range rows {
		s.TotalKeywords++
		s.TotalURLs += row.TotalURLs
		s.ExposedURLs += row.ExposedURLs
		s.HiddenURLs += row.HiddenURLs
		s.ErrorURLs += row.ErrorURLs

		switch {
		case row.TotalURLs == 0:
			s.NoURLKeywords++
		case row.ExposedURLs > 0:
			s.KeywordsWithURLs++
			s.ExposedKeywords++
		case row.HiddenURLs > 0:
			s.KeywordsWithURLs++
			s.NotExposedKeywords++
		default:
			s.KeywordsWithURLs++
		}

		if row.ExposedURLs+row.HiddenURLs+row.ErrorURLs > 0 {
			rateSum += Rate(row.ExposedURLs, row.TotalURLs)
			rated++
		}

		if row.LastScanAt != nil && (s.LastScanTime == nil || row.LastScanAt.After(*s.LastScanTime)) {
			s.LastScanTime = row.LastScanAt
		}
	}

	s.ExposureSuccessRate = Rate(s.ExposedKeywords, s.KeywordsWithURLs)
	if rated > 0 {
		s.AverageExposureRate = int(float64(rateSum)/float64(rated) + 0.5)
	}

	s.ExposureStatsData = []NameValue{
		{Name: string(models.StatusExposed), Value: s.ExposedKeywords},
		{Name: string(models.StatusNotExposed), Value: s.NotExposedKeywords},
		{Name: string(models.StatusNoURL), Value: s.NoURLKeywords},
	}

	return s
}

// BuildStatistics builds the global summary plus a per-category breakdown
// from the same rows, each category computed with the same formulas.
func BuildStatistics(rows []repository.KeywordStatRow) (Summary, map[string]Summary) {
	byCategory := make(map[string][]repository.KeywordStatRow)
	for _, row := range rows {
		byCategory[row.CategoryName] = append(byCategory[row.CategoryName], row)
	}

	categoryData := make(map[string]Summary, len(byCategory))
	for name, categoryRows := range byCategory {
		categoryData[name] = BuildSummary(categoryRows)
	}

	return BuildSummary(rows), categoryData
}
