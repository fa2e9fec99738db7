package models

import "time"

// Category is a named grouping of keywords (e.g. "cancer", "diabetes").
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Derived counts, populated by list queries.
	KeywordCount int `json:"keyword_count" db:"keyword_count"`
	URLCount     int `json:"url_count" db:"url_count"`
}
