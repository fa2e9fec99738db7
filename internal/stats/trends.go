package stats

import (
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

// Trend directions rendered next to each change.
const (
	TrendUp   = "up"
	TrendDown = "down"
)

// TrendChange is one entry of the exposure change feed.
type TrendChange struct {
	TargetURL      string    `json:"target_url"`
	KeywordText    string    `json:"keyword_text"`
	CategoryName   string    `json:"category_name"`
	PreviousStatus bool      `json:"previous_status"`
	CurrentStatus  bool      `json:"current_status"`
	ChangeType     string    `json:"change_type"`
	ExposureRank   *int      `json:"exposure_rank"`
	ChangedAt      time.Time `json:"changed_at"`
	TrendDirection string    `json:"trend_direction"`
}

// TrendSummary tallies the change feed by change type.
type TrendSummary struct {
	NewlyExposed int `json:"newly_exposed"`
	NewlyHidden  int `json:"newly_hidden"`
	RankChanged  int `json:"rank_changed"`
	TotalChanges int `json:"total_changes"`
}

// BuildTrends converts change rows into the feed plus its per-type tally.
// Change detection happened upstream; this only shapes and counts.
func BuildTrends(rows []repository.TrendRow) ([]TrendChange, TrendSummary) {
	changes := make([]TrendChange, 0, len(rows))
	var summary TrendSummary

	for _, row := range rows {
		switch row.ChangeType {
		case repository.ChangeNewlyExposed:
			summary.NewlyExposed++
		case repository.ChangeNewlyHidden:
			summary.NewlyHidden++
		case repository.ChangeRankChanged:
			summary.RankChanged++
		}
		summary.TotalChanges++

		changes = append(changes, TrendChange{
			TargetURL:      row.TargetURL,
			KeywordText:    row.KeywordText,
			CategoryName:   row.CategoryName,
			PreviousStatus: row.PreviousStatus,
			CurrentStatus:  row.CurrentStatus,
			ChangeType:     row.ChangeType,
			ExposureRank:   row.ExposureRank,
			ChangedAt:      row.ChangedAt,
			TrendDirection: direction(row),
		})
	}

	return changes, summary
}

// direction classifies a change as up or down. For rank changes a lower
// rank number is a better position.
func direction(row repository.TrendRow) string {
	switch row.ChangeType {
	case repository.ChangeNewlyExposed:
		return TrendUp
	case repository.ChangeNewlyHidden:
		return TrendDown
	}

	// rank_changed: gaining a rank where there was none counts as up,
	// losing a rank as down.
	switch {
	case row.PreviousRank == nil && row.ExposureRank != nil:
		return TrendUp
	case row.PreviousRank != nil && row.ExposureRank == nil:
		return TrendDown
	case row.PreviousRank != nil && row.ExposureRank != nil && *row.ExposureRank < *row.PreviousRank:
		return TrendUp
	default:
		return TrendDown
	}
}
