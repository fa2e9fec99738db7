package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/models"
)

const (
	// BulkLimit is the hard cap on entries per bulk registration request.
	BulkLimit = 500
	// bulkErrorLimit bounds the error strings returned to the caller.
	bulkErrorLimit = 10
)

// BulkEntry is one keyword to register, optionally with URLs.
type BulkEntry struct {
	KeywordText  string   `json:"keyword_text"`
	CategoryName string   `json:"category_name"`
	Priority     int      `json:"priority"`
	URLs         []string `json:"urls"`
}

// BulkResult is the per-item accounting of a bulk registration.
// Successful + Failed always equals Total.
type BulkResult struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Total      int      `json:"total"`
	Errors     []string `json:"errors"`
}

func (res *BulkResult) fail(msg string) {
	res.Failed++
	if len(res.Errors) < bulkErrorLimit {
		res.Errors = append(res.Errors, msg)
	}
}

// BulkCreate registers up to BulkLimit keywords in one transaction.
// Per-entry business failures (unknown category, duplicate keyword) are
// recorded as soft failures and do not roll back prior inserts; a failed
// URL insert is logged and skipped without failing its keyword; only a
// store-level failure aborts the whole batch. Duplicate detection relies
// on the (category_id, keyword_text) unique constraint, so concurrent
// imports cannot double-insert.
func (r *KeywordRepository) BulkCreate(ctx context.Context, entries []BulkEntry) (result *BulkResult, err error) {
	if len(entries) > BulkLimit {
		return nil, fmt.Errorf("bulk request exceeds %d entries", BulkLimit)
	}

	result = &BulkResult{Total: len(entries), Errors: make([]string, 0)}
	if len(entries) == 0 {
		return result, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("failed to rollback transaction",
					logger.Error(rbErr),
				)
			}
		}
	}()

	// Category ids are resolved once per distinct name within the batch.
	categoryIDs := make(map[string]string)

	insertKeyword := `
		INSERT INTO keywords (id, category_id, keyword_text, priority, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, $5, $5)
		ON CONFLICT (category_id, keyword_text) DO NOTHING
	`
	insertURL := `
		INSERT INTO keyword_urls (id, keyword_id, target_url, url_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, $5, $5)
		ON CONFLICT (keyword_id, target_url) DO NOTHING
	`

	for _, entry := range entries {
		categoryID, ok := categoryIDs[entry.CategoryName]
		if !ok {
			lookupErr := tx.QueryRowContext(ctx,
				`SELECT id FROM categories WHERE name = $1`, entry.CategoryName,
			).Scan(&categoryID)
			if lookupErr != nil {
				result.fail(fmt.Sprintf("%s: category %q not found", entry.KeywordText, entry.CategoryName))
				categoryIDs[entry.CategoryName] = ""
				continue
			}
			categoryIDs[entry.CategoryName] = categoryID
		}
		if categoryID == "" {
			result.fail(fmt.Sprintf("%s: category %q not found", entry.KeywordText, entry.CategoryName))
			continue
		}

		priority := entry.Priority
		if !models.ValidPriority(priority) {
			priority = models.PriorityDefault
		}

		keywordID := uuid.New().String()
		now := time.Now()
		res, execErr := tx.ExecContext(ctx, insertKeyword, keywordID, categoryID, entry.KeywordText, priority, now)
		if execErr != nil {
			err = fmt.Errorf("insert keyword %q: %w", entry.KeywordText, execErr)
			return nil, err
		}
		affected, execErr := res.RowsAffected()
		if execErr != nil {
			err = fmt.Errorf("get rows affected: %w", execErr)
			return nil, err
		}
		if affected == 0 {
			result.fail(fmt.Sprintf("%s: already exists", entry.KeywordText))
			continue
		}

		// URL conflicts are absorbed by the constraint. Any other URL
		// insert failure rolls back to the savepoint so the poisoned
		// statement is undone, the keyword stays registered, and the
		// remaining URLs still run.
		for _, target := range entry.URLs {
			if _, spErr := tx.ExecContext(ctx, `SAVEPOINT bulk_url`); spErr != nil {
				err = fmt.Errorf("set savepoint: %w", spErr)
				return nil, err
			}
			_, urlErr := tx.ExecContext(ctx, insertURL,
				uuid.New().String(), keywordID, target, models.URLTypeMonitor, now,
			)
			if urlErr == nil {
				continue
			}
			if _, spErr := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT bulk_url`); spErr != nil {
				err = fmt.Errorf("rollback to savepoint: %w", spErr)
				return nil, err
			}
			r.logger.Warn("skipping url in bulk registration",
				logger.String("keyword", entry.KeywordText),
				logger.String("target_url", target),
				logger.Error(urlErr),
			)
		}

		result.Successful++
	}

	if commitErr := tx.Commit(); commitErr != nil {
		err = fmt.Errorf("commit transaction: %w", commitErr)
		return nil, err
	}

	return result, nil
}
