package models

import "time"

// Priority bounds for keywords. 1 is the highest priority.
const (
	PriorityHighest = 1
	PriorityLowest  = 5
	PriorityDefault = 3
)

// URL types a keyword URL can have.
const (
	URLTypeMonitor = "monitor"
	URLTypeTarget  = "target"
)

// ExposureStatus is the derived classification of a keyword.
// The values are the Korean labels the dashboard renders.
type ExposureStatus string

const (
	// StatusNoURL: the keyword has no active URLs.
	StatusNoURL ExposureStatus = "URL 없음"
	// StatusExposed: at least one URL is currently exposed.
	StatusExposed ExposureStatus = "노출됨"
	// StatusNotExposed: no URL exposed, at least one known not exposed.
	StatusNotExposed ExposureStatus = "노출 안됨"
	// StatusUnconfirmed: URLs exist but none has a completed scan outcome.
	StatusUnconfirmed ExposureStatus = "미확인"
)

// ValidPriority reports whether p is within the allowed 1..5 range.
func ValidPriority(p int) bool {
	return p >= PriorityHighest && p <= PriorityLowest
}

// Keyword is a monitored search keyword owned by a category.
type Keyword struct {
	ID          string    `json:"id" db:"id"`
	CategoryID  string    `json:"category_id" db:"category_id"`
	KeywordText string    `json:"keyword_text" db:"keyword_text"`
	Priority    int       `json:"priority" db:"priority"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// KeywordURL is a URL checked for exposure on behalf of a keyword.
type KeywordURL struct {
	ID        string    `json:"id" db:"id"`
	KeywordID string    `json:"keyword_id" db:"keyword_id"`
	TargetURL string    `json:"target_url" db:"target_url"`
	URLType   string    `json:"url_type" db:"url_type"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
