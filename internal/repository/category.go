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

type CategoryRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCategoryRepository(db *sql.DB, log logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: log,
	}
}

// List returns all categories with their active keyword and URL counts.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT c.id, c.name, c.display_name, c.description, c.is_active,
		       c.created_at, c.updated_at,
		       COUNT(DISTINCT k.id) AS keyword_count,
		       COUNT(u.id) AS url_count
		FROM categories c
		LEFT JOIN keywords k ON k.category_id = c.id AND k.is_active = true
		LEFT JOIN keyword_urls u ON u.keyword_id = k.id AND u.is_active = true
		GROUP BY c.id, c.name, c.display_name, c.description, c.is_active,
		         c.created_at, c.updated_at
		ORDER BY c.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if scanErr := rows.Scan(
			&c.ID,
			&c.Name,
			&c.DisplayName,
			&c.Description,
			&c.IsActive,
			&c.CreatedAt,
			&c.UpdatedAt,
			&c.KeywordCount,
			&c.URLCount,
		); scanErr != nil {
			return nil, fmt.Errorf("scan category: %w", scanErr)
		}
		categories = append(categories, c)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate categories: %w", rowsErr)
	}

	return categories, nil
}

// GetByName returns a category by its unique slug name.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	query := `
		SELECT id, name, display_name, description, is_active, created_at, updated_at
		FROM categories
		WHERE name = $1
	`

	var c models.Category
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&c.ID,
		&c.Name,
		&c.DisplayName,
		&c.Description,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.ID = uuid.New().String()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	query := `
		INSERT INTO categories (id, name, display_name, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		category.ID,
		category.Name,
		category.DisplayName,
		category.Description,
		category.IsActive,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now()

	query := `
		UPDATE categories
		SET name = $2, display_name = $3, description = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx,
		query,
		category.ID,
		category.Name,
		category.DisplayName,
		category.Description,
		category.IsActive,
		category.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("category %q: %w", category.Name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
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

// Delete removes a category. It is rejected while the category still owns
// keywords; cascade-delete the keywords first.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	var keywordCount int
	countQuery := `SELECT COUNT(*) FROM keywords WHERE category_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, id).Scan(&keywordCount); err != nil {
		return fmt.Errorf("count category keywords: %w", err)
	}
	if keywordCount > 0 {
		return fmt.Errorf("%d keywords attached: %w", keywordCount, ErrCategoryHasKeywords)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
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
