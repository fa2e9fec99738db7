// Package repository implements parameterized PostgreSQL access for
// categories, keywords, URLs, and scan data.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert hits a uniqueness constraint.
	ErrDuplicate = errors.New("already exists")
	// ErrCategoryHasKeywords is returned when deleting a category that
	// still owns keywords.
	ErrCategoryHasKeywords = errors.New("category has keywords")
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
