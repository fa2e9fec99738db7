package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/lib/pq"
)

// KeywordAll is the sentinel filter value for listing URLs of all keywords.
const KeywordAll = "all"

// foreignKeyViolation is the PostgreSQL error code for FK constraint hits.
const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}

type URLRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewURLRepository(db *sql.DB, log logger.Logger) *URLRepository {
	return &URLRepository{
		db:     db,
		logger: log,
	}
}

// URLListRow is a keyword URL with its owning keyword and latest
// completed-session scan outcome.
type URLListRow struct {
	ID           string          `json:"id"`
	KeywordID    string          `json:"keyword_id"`
	KeywordText  string          `json:"keyword_text"`
	CategoryName string          `json:"category_name"`
	TargetURL    string          `json:"target_url"`
	URLType      string          `json:"url_type"`
	IsActive     bool            `json:"is_active"`
	IsExposed    models.Exposure `json:"is_exposed"`
	ExposureRank *int            `json:"exposure_rank"`
	ScannedAt    *time.Time      `json:"scanned_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// List returns URLs for one keyword id, or for all keywords when the
// filter is KeywordAll, each with its latest completed-session detail.
func (r *URLRepository) List(ctx context.Context, keyword string) ([]URLListRow, error) {
	query := `
		SELECT u.id, u.keyword_id, k.keyword_text, c.name, u.target_url, u.url_type,
		       u.is_active, d.is_exposed, d.exposure_rank, d.scanned_at, u.created_at
		FROM keyword_urls u
		JOIN keywords k ON k.id = u.keyword_id
		JOIN categories c ON c.id = k.category_id
		LEFT JOIN LATERAL (
			SELECT sd.is_exposed, sd.exposure_rank, sd.scanned_at
			FROM url_scan_details sd
			JOIN scan_results sr ON sr.id = sd.scan_result_id
			JOIN scan_sessions ss ON ss.id = sr.session_id
			WHERE sd.url_id = u.id AND ss.scan_status = 'completed'
			ORDER BY sd.scanned_at DESC, sd.id DESC
			LIMIT 1
		) d ON true
	`
	args := make([]any, 0, 1)
	if keyword != KeywordAll {
		query += ` WHERE u.keyword_id = $1`
		args = append(args, keyword)
	}
	query += ` ORDER BY c.name, k.keyword_text, u.created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query urls: %w", err)
	}
	defer rows.Close()

	urls := make([]URLListRow, 0)
	for rows.Next() {
		var u URLListRow
		if scanErr := rows.Scan(
			&u.ID,
			&u.KeywordID,
			&u.KeywordText,
			&u.CategoryName,
			&u.TargetURL,
			&u.URLType,
			&u.IsActive,
			&u.IsExposed,
			&u.ExposureRank,
			&u.ScannedAt,
			&u.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan url: %w", scanErr)
		}
		urls = append(urls, u)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate urls: %w", rowsErr)
	}

	return urls, nil
}

// GetByID fetches a single URL row, without scan details.
func (r *URLRepository) GetByID(ctx context.Context, id string) (*models.KeywordURL, error) {
	query := `
		SELECT id, keyword_id, target_url, url_type, is_active, created_at, updated_at
		FROM keyword_urls
		WHERE id = $1
	`

	var url models.KeywordURL
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&url.ID,
		&url.KeywordID,
		&url.TargetURL,
		&url.URLType,
		&url.IsActive,
		&url.CreatedAt,
		&url.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("url %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get url: %w", err)
	}

	return &url, nil
}

// Create inserts a URL for a keyword. A duplicate target URL on the same
// keyword surfaces as ErrDuplicate; an unknown keyword as ErrNotFound.
func (r *URLRepository) Create(ctx context.Context, url *models.KeywordURL) error {
	url.ID = uuid.New().String()
	url.CreatedAt = time.Now()
	url.UpdatedAt = time.Now()
	if url.URLType == "" {
		url.URLType = models.URLTypeMonitor
	}

	query := `
		INSERT INTO keyword_urls (id, keyword_id, target_url, url_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		url.ID,
		url.KeywordID,
		url.TargetURL,
		url.URLType,
		url.IsActive,
		url.CreatedAt,
		url.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("url %q: %w", url.TargetURL, ErrDuplicate)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("keyword %s: %w", url.KeywordID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("insert url: %w", err)
	}

	return nil
}

func (r *URLRepository) Update(ctx context.Context, url *models.KeywordURL) error {
	url.UpdatedAt = time.Now()

	query := `
		UPDATE keyword_urls
		SET target_url = $2, url_type = $3, is_active = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		url.ID,
		url.TargetURL,
		url.URLType,
		url.IsActive,
		url.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("url %q: %w", url.TargetURL, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("update url: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *URLRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM keyword_urls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete url: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
