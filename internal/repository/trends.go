package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/logger"
)

// Change types emitted by the exposure change log.
const (
	ChangeNewlyExposed = "newly_exposed"
	ChangeNewlyHidden  = "newly_hidden"
	ChangeRankChanged  = "rank_changed"
)

// TrendRow is one exposure change: a flip of is_exposed between adjacent
// completed scans of the same URL, or a rank move while exposed.
type TrendRow struct {
	TargetURL      string
	KeywordText    string
	CategoryName   string
	PreviousStatus bool
	CurrentStatus  bool
	ChangeType     string
	ExposureRank   *int
	PreviousRank   *int
	ChangedAt      time.Time
}

// trendShell filters and bounds the change-log source (view or inline
// computation). $1 = trailing window in days, last arg = limit, optional
// category filter in between.
const trendShell = `
	SELECT target_url, keyword_text, category_name,
	       previous_status, current_status, change_type,
	       exposure_rank, previous_rank, changed_at
	FROM %s t
	WHERE t.changed_at >= NOW() - make_interval(days => $1)%s
	ORDER BY t.changed_at DESC
	LIMIT $%d
`

// trendFallback recomputes the change log from base tables: order each
// URL's completed-session details by scanned_at (id breaks ties), compare
// adjacent pairs, and keep flips and rank moves.
const trendFallback = `(
		WITH ordered AS (
			SELECT u.target_url, k.keyword_text, c.name AS category_name,
			       sd.is_exposed, sd.exposure_rank, sd.scanned_at,
			       LAG(sd.is_exposed) OVER w AS prev_exposed,
			       LAG(sd.exposure_rank) OVER w AS prev_rank
			FROM url_scan_details sd
			JOIN scan_results sr ON sr.id = sd.scan_result_id
			JOIN scan_sessions ss ON ss.id = sr.session_id
			JOIN keyword_urls u ON u.id = sd.url_id
			JOIN keywords k ON k.id = u.keyword_id
			JOIN categories c ON c.id = k.category_id
			WHERE ss.scan_status = 'completed'
			WINDOW w AS (PARTITION BY sd.url_id ORDER BY sd.scanned_at, sd.id)
		)
		SELECT target_url, keyword_text, category_name,
		       prev_exposed AS previous_status,
		       is_exposed AS current_status,
		       CASE
		           WHEN prev_exposed = false AND is_exposed = true THEN 'newly_exposed'
		           WHEN prev_exposed = true AND is_exposed = false THEN 'newly_hidden'
		           ELSE 'rank_changed'
		       END AS change_type,
		       exposure_rank, prev_rank AS previous_rank,
		       scanned_at AS changed_at
		FROM ordered
		WHERE (prev_exposed = false AND is_exposed = true)
		   OR (prev_exposed = true AND is_exposed = false)
		   OR (prev_exposed = true AND is_exposed = true
		       AND prev_rank IS DISTINCT FROM exposure_rank)
	)`

// Trends returns exposure changes within the trailing window, newest
// first, bounded by limit. The precomputed v_exposure_trends view is read
// first with a base-table recomputation as fallback; both paths produce
// identical rows.
func (r *ScanRepository) Trends(ctx context.Context, category string, days, limit int) ([]TrendRow, error) {
	rows, err := r.queryTrends(ctx, category, days, limit, "v_exposure_trends")
	if err == nil {
		return rows, nil
	}

	r.logger.Warn("trend view query failed, using base-table fallback",
		logger.Error(err),
	)

	rows, fallbackErr := r.queryTrends(ctx, category, days, limit, trendFallback)
	if fallbackErr != nil {
		return nil, fmt.Errorf("trends fallback: %w", fallbackErr)
	}
	return rows, nil
}

func (r *ScanRepository) queryTrends(ctx context.Context, category string, days, limit int, source string) ([]TrendRow, error) {
	filter := ""
	args := []any{days}
	if category != CategoryAll {
		args = append(args, category)
		filter = fmt.Sprintf(` AND t.category_name = $%d`, len(args))
	}
	args = append(args, limit)
	query := fmt.Sprintf(trendShell, source, filter, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trends: %w", err)
	}
	defer rows.Close()

	trends := make([]TrendRow, 0)
	for rows.Next() {
		var t TrendRow
		if scanErr := rows.Scan(
			&t.TargetURL,
			&t.KeywordText,
			&t.CategoryName,
			&t.PreviousStatus,
			&t.CurrentStatus,
			&t.ChangeType,
			&t.ExposureRank,
			&t.PreviousRank,
			&t.ChangedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan trend: %w", scanErr)
		}
		trends = append(trends, t)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate trends: %w", rowsErr)
	}

	return trends, nil
}
