package stats_test

import (
	"testing"
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/jonesrussell/keyword-monitor/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestBuildTrends(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	rows := []repository.TrendRow{
		{
			TargetURL:      "https://example.com/a",
			KeywordText:    "폐암 치료",
			CategoryName:   "cancer",
			PreviousStatus: false,
			CurrentStatus:  true,
			ChangeType:     repository.ChangeNewlyExposed,
			ExposureRank:   intPtr(2),
			ChangedAt:      now,
		},
		{
			TargetURL:      "https://example.com/b",
			PreviousStatus: true,
			CurrentStatus:  false,
			ChangeType:     repository.ChangeNewlyHidden,
			ChangedAt:      now,
		},
		{
			TargetURL:      "https://example.com/c",
			PreviousStatus: true,
			CurrentStatus:  true,
			ChangeType:     repository.ChangeRankChanged,
			PreviousRank:   intPtr(5),
			ExposureRank:   intPtr(2),
			ChangedAt:      now,
		},
		{
			TargetURL:      "https://example.com/d",
			PreviousStatus: true,
			CurrentStatus:  true,
			ChangeType:     repository.ChangeRankChanged,
			PreviousRank:   intPtr(1),
			ExposureRank:   intPtr(4),
			ChangedAt:      now,
		},
	}

	changes, summary := stats.BuildTrends(rows)

	require.Len(t, changes, 4)
	assert.Equal(t, 1, summary.NewlyExposed)
	assert.Equal(t, 1, summary.NewlyHidden)
	assert.Equal(t, 2, summary.RankChanged)
	assert.Equal(t, 4, summary.TotalChanges)

	assert.Equal(t, stats.TrendUp, changes[0].TrendDirection)
	assert.Equal(t, stats.TrendDown, changes[1].TrendDirection)
	// 5 -> 2 is a better position
	assert.Equal(t, stats.TrendUp, changes[2].TrendDirection)
	// 1 -> 4 is a worse position
	assert.Equal(t, stats.TrendDown, changes[3].TrendDirection)
}

func TestBuildTrendsRankDirectionNilBounds(t *testing.T) {
	gained := repository.TrendRow{
		ChangeType:   repository.ChangeRankChanged,
		ExposureRank: intPtr(3),
	}
	lost := repository.TrendRow{
		ChangeType:   repository.ChangeRankChanged,
		PreviousRank: intPtr(3),
	}

	changes, _ := stats.BuildTrends([]repository.TrendRow{gained, lost})
	require.Len(t, changes, 2)
	assert.Equal(t, stats.TrendUp, changes[0].TrendDirection)
	assert.Equal(t, stats.TrendDown, changes[1].TrendDirection)
}

func TestBuildTrendsEmpty(t *testing.T) {
	changes, summary := stats.BuildTrends(nil)

	assert.NotNil(t, changes)
	assert.Empty(t, changes)
	assert.Zero(t, summary.TotalChanges)
}
