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
)

// CategoryAll is the sentinel filter value meaning "no category filter".
const CategoryAll = "all"

type KeywordRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewKeywordRepository(db *sql.DB, log logger.Logger) *KeywordRepository {
	return &KeywordRepository{
		db:     db,
		logger: log,
	}
}

// KeywordRow is an active keyword joined to its category, the unit the
// aggregation engine shapes into a dashboard record.
type KeywordRow struct {
	ID                  string
	KeywordText         string
	CategoryName        string
	CategoryDisplayName string
	Priority            int
	IsActive            bool
}

// URLScanRow is an active keyword URL joined to its single latest
// completed-session scan detail. A URL never scanned by a completed
// session has Unknown exposure and nil rank/code/time.
type URLScanRow struct {
	ID           string
	TargetURL    string
	URLType      string
	IsActive     bool
	IsExposed    models.Exposure
	ExposureRank *int
	ResponseCode *int
	ScannedAt    *time.Time
}

// ListActive returns active keywords for the category filter, ordered by
// category name, then priority, then keyword text.
func (r *KeywordRepository) ListActive(ctx context.Context, category string) ([]KeywordRow, error) {
	query := `
		SELECT k.id, k.keyword_text, c.name, c.display_name, k.priority, k.is_active
		FROM keywords k
		JOIN categories c ON c.id = k.category_id
		WHERE k.is_active = true
	`
	args := make([]any, 0, 1)
	if category != CategoryAll {
		query += ` AND c.name = $1`
		args = append(args, category)
	}
	query += ` ORDER BY c.name, k.priority, k.keyword_text`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query keywords: %w", err)
	}
	defer rows.Close()

	keywords := make([]KeywordRow, 0)
	for rows.Next() {
		var k KeywordRow
		if scanErr := rows.Scan(
			&k.ID,
			&k.KeywordText,
			&k.CategoryName,
			&k.CategoryDisplayName,
			&k.Priority,
			&k.IsActive,
		); scanErr != nil {
			return nil, fmt.Errorf("scan keyword: %w", scanErr)
		}
		keywords = append(keywords, k)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate keywords: %w", rowsErr)
	}

	return keywords, nil
}

// URLsWithLatestScan returns the keyword's active URLs, each joined to its
// latest completed-session scan detail. Ties on scanned_at break on the
// higher detail id so the result is deterministic.
func (r *KeywordRepository) URLsWithLatestScan(ctx context.Context, keywordID string) ([]URLScanRow, error) {
	query := `
		SELECT u.id, u.target_url, u.url_type, u.is_active,
		       d.is_exposed, d.exposure_rank, d.response_code, d.scanned_at
		FROM keyword_urls u
		LEFT JOIN LATERAL (
			SELECT sd.is_exposed, sd.exposure_rank, sd.response_code, sd.scanned_at
			FROM url_scan_details sd
			JOIN scan_results sr ON sr.id = sd.scan_result_id
			JOIN scan_sessions ss ON ss.id = sr.session_id
			WHERE sd.url_id = u.id AND ss.scan_status = 'completed'
			ORDER BY sd.scanned_at DESC, sd.id DESC
			LIMIT 1
		) d ON true
		WHERE u.keyword_id = $1 AND u.is_active = true
		ORDER BY u.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, keywordID)
	if err != nil {
		return nil, fmt.Errorf("query keyword urls: %w", err)
	}
	defer rows.Close()

	urls := make([]URLScanRow, 0)
	for rows.Next() {
		var u URLScanRow
		if scanErr := rows.Scan(
			&u.ID,
			&u.TargetURL,
			&u.URLType,
			&u.IsActive,
			&u.IsExposed,
			&u.ExposureRank,
			&u.ResponseCode,
			&u.ScannedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("scan keyword url: %w", scanErr)
		}
		urls = append(urls, u)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate keyword urls: %w", rowsErr)
	}

	return urls, nil
}

func (r *KeywordRepository) GetByID(ctx context.Context, id string) (*models.Keyword, error) {
	query := `
		SELECT id, category_id, keyword_text, priority, is_active, created_at, updated_at
		FROM keywords
		WHERE id = $1
	`

	var k models.Keyword
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&k.ID,
		&k.CategoryID,
		&k.KeywordText,
		&k.Priority,
		&k.IsActive,
		&k.CreatedAt,
		&k.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("keyword %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query keyword: %w", err)
	}

	return &k, nil
}

// Create inserts a keyword. The (category_id, keyword_text) uniqueness is
// enforced by the store; a constraint hit surfaces as ErrDuplicate.
func (r *KeywordRepository) Create(ctx context.Context, keyword *models.Keyword) error {
	keyword.ID = uuid.New().String()
	keyword.CreatedAt = time.Now()
	keyword.UpdatedAt = time.Now()

	query := `
		INSERT INTO keywords (id, category_id, keyword_text, priority, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		keyword.ID,
		keyword.CategoryID,
		keyword.KeywordText,
		keyword.Priority,
		keyword.IsActive,
		keyword.CreatedAt,
		keyword.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("keyword %q: %w", keyword.KeywordText, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert keyword: %w", err)
	}

	return nil
}

func (r *KeywordRepository) Update(ctx context.Context, keyword *models.Keyword) error {
	keyword.UpdatedAt = time.Now()

	query := `
		UPDATE keywords
		SET keyword_text = $2, priority = $3, is_active = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		keyword.ID,
		keyword.KeywordText,
		keyword.Priority,
		keyword.IsActive,
		keyword.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("keyword %q: %w", keyword.KeywordText, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("update keyword: %w", err)
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

// Delete removes a keyword. Its URLs and scan history cascade at the
// store level.
func (r *KeywordRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM keywords WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete keyword: %w", err)
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
