package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/models"
)

type ScanRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewScanRepository(db *sql.DB, log logger.Logger) *ScanRepository {
	return &ScanRepository{
		db:     db,
		logger: log,
	}
}

// KeywordStatRow is the per-keyword aggregate the statistics engine sums
// into category and global summaries. Keywords with zero active URLs are
// included with zero counts.
type KeywordStatRow struct {
	KeywordID    string
	CategoryName string
	TotalURLs    int
	ExposedURLs  int
	HiddenURLs   int
	ErrorURLs    int
	LastScanAt   *time.Time
}

// keywordStatsShell wraps the latest-scan source (view or inline window)
// into the per-keyword aggregate query. The two variants must stay
// semantically identical: the fallback is a full substitute, not
// best-effort.
const keywordStatsShell = `
	SELECT k.id, c.name,
	       COUNT(u.id) AS total_urls,
	       COUNT(*) FILTER (WHERE v.is_exposed = true) AS exposed_urls,
	       COUNT(*) FILTER (WHERE v.is_exposed = false) AS hidden_urls,
	       COUNT(*) FILTER (WHERE u.id IS NOT NULL AND v.url_id IS NOT NULL AND v.is_exposed IS NULL) AS error_urls,
	       MAX(v.scanned_at) AS last_scan_at
	FROM keywords k
	JOIN categories c ON c.id = k.category_id
	LEFT JOIN keyword_urls u ON u.keyword_id = k.id AND u.is_active = true
	LEFT JOIN %s v ON v.url_id = u.id
	WHERE k.is_active = true%s
	GROUP BY k.id, c.name
	ORDER BY c.name, k.id
`

// latestScanFallback replicates v_latest_scan_results against base tables:
// latest completed-session detail per URL, ties broken on highest id.
const latestScanFallback = `(
		SELECT url_id, is_exposed, scanned_at
		FROM (
			SELECT sd.url_id, sd.is_exposed, sd.scanned_at,
			       ROW_NUMBER() OVER (
			           PARTITION BY sd.url_id
			           ORDER BY sd.scanned_at DESC, sd.id DESC
			       ) AS rn
			FROM url_scan_details sd
			JOIN scan_results sr ON sr.id = sd.scan_result_id
			JOIN scan_sessions ss ON ss.id = sr.session_id
			WHERE ss.scan_status = 'completed'
		) latest
		WHERE rn = 1
	)`

// KeywordStats returns per-keyword aggregates for the category filter.
// It reads the precomputed v_latest_scan_results view first and falls
// back to an equivalent base-table window query when the view query
// fails (e.g. the view migration was never applied).
func (r *ScanRepository) KeywordStats(ctx context.Context, category string) ([]KeywordStatRow, error) {
	rows, err := r.queryKeywordStats(ctx, category, "v_latest_scan_results")
	if err == nil {
		return rows, nil
	}

	r.logger.Warn("latest-scan view query failed, using base-table fallback",
		logger.Error(err),
	)

	rows, fallbackErr := r.queryKeywordStats(ctx, category, latestScanFallback)
	if fallbackErr != nil {
		return nil, fmt.Errorf("keyword stats fallback: %w", fallbackErr)
	}
	return rows, nil
}

func (r *ScanRepository) queryKeywordStats(ctx context.Context, category, latestSource string) ([]KeywordStatRow, error) {
	filter := ""
	args := make([]any, 0, 1)
	if category != CategoryAll {
		filter = ` AND c.name = $1`
		args = append(args, category)
	}
	query := fmt.Sprintf(keywordStatsShell, latestSource, filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query keyword stats: %w", err)
	}
	defer rows.Close()

	stats := make([]KeywordStatRow, 0)
	for rows.Next() {
		var s KeywordStatRow
		if scanErr := rows.Scan(
			&s.KeywordID,
			&s.CategoryName,
			&s.TotalURLs,
			&s.ExposedURLs,
			&s.HiddenURLs,
			&s.ErrorURLs,
			&s.LastScanAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan keyword stats: %w", scanErr)
		}
		stats = append(stats, s)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate keyword stats: %w", rowsErr)
	}

	return stats, nil
}

// Sessions returns recent scan sessions with rollup totals from their
// results, newest first.
func (r *ScanRepository) Sessions(ctx context.Context, category string, limit int) ([]models.SessionPerformance, error) {
	query := `
		SELECT s.id, s.category_name, s.session_name, s.scan_type, s.scan_status,
		       s.started_at, s.completed_at, s.total_keywords, s.processed_keywords,
		       COALESCE(SUM(sr.total_urls_scanned), 0),
		       COALESCE(SUM(sr.exposed_urls_count), 0),
		       COALESCE(SUM(sr.hidden_urls_count), 0),
		       COALESCE(SUM(sr.error_urls_count), 0)
		FROM scan_sessions s
		LEFT JOIN scan_results sr ON sr.session_id = s.id
	`
	args := make([]any, 0, 2)
	if category != CategoryAll {
		query += ` WHERE s.category_name = $1`
		args = append(args, category)
	}
	query += `
		GROUP BY s.id, s.category_name, s.session_name, s.scan_type, s.scan_status,
		         s.started_at, s.completed_at, s.total_keywords, s.processed_keywords
		ORDER BY s.started_at DESC
	`
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scan sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.SessionPerformance, 0)
	for rows.Next() {
		var s models.SessionPerformance
		if scanErr := rows.Scan(
			&s.ID,
			&s.CategoryName,
			&s.SessionName,
			&s.ScanType,
			&s.ScanStatus,
			&s.StartedAt,
			&s.CompletedAt,
			&s.TotalKeywords,
			&s.ProcessedKeywords,
			&s.TotalURLsScanned,
			&s.ExposedURLs,
			&s.HiddenURLs,
			&s.ErrorURLs,
		); scanErr != nil {
			return nil, fmt.Errorf("scan session: %w", scanErr)
		}
		if s.TotalKeywords > 0 {
			s.Progress = int(float64(s.ProcessedKeywords)/float64(s.TotalKeywords)*100 + 0.5)
		}
		sessions = append(sessions, s)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate sessions: %w", rowsErr)
	}

	return sessions, nil
}
