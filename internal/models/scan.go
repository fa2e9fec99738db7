package models

import "time"

// Scan session statuses written by the external scanner.
// Only completed sessions contribute to current exposure state.
const (
	ScanStatusRunning   = "running"
	ScanStatusCompleted = "completed"
	ScanStatusFailed    = "failed"
)

// ScanSession is one batch run of the external scanner.
type ScanSession struct {
	ID                string     `json:"id" db:"id"`
	CategoryName      string     `json:"category_name" db:"category_name"`
	SessionName       string     `json:"session_name" db:"session_name"`
	ScanType          string     `json:"scan_type" db:"scan_type"`
	ScanStatus        string     `json:"scan_status" db:"scan_status"`
	StartedAt         time.Time  `json:"started_at" db:"started_at"`
	CompletedAt       *time.Time `json:"completed_at" db:"completed_at"`
	TotalKeywords     int        `json:"total_keywords" db:"total_keywords"`
	ProcessedKeywords int        `json:"processed_keywords" db:"processed_keywords"`
}

// SessionPerformance is a session row with rollup totals from its results.
type SessionPerformance struct {
	ScanSession
	Progress         int `json:"progress"` // processed/total percent
	TotalURLsScanned int `json:"total_urls_scanned"`
	ExposedURLs      int `json:"exposed_urls"`
	HiddenURLs       int `json:"hidden_urls"`
	ErrorURLs        int `json:"error_urls"`
}

// ScanResult is a per-keyword rollup produced by one session.
type ScanResult struct {
	ID               string    `json:"id" db:"id"`
	SessionID        string    `json:"session_id" db:"session_id"`
	KeywordID        string    `json:"keyword_id" db:"keyword_id"`
	TotalURLsScanned int       `json:"total_urls_scanned" db:"total_urls_scanned"`
	ExposedURLsCount int       `json:"exposed_urls_count" db:"exposed_urls_count"`
	HiddenURLsCount  int       `json:"hidden_urls_count" db:"hidden_urls_count"`
	ErrorURLsCount   int       `json:"error_urls_count" db:"error_urls_count"`
	ScannedAt        time.Time `json:"scanned_at" db:"scanned_at"`
}

// URLScanDetail is the per-URL outcome within one scan result.
type URLScanDetail struct {
	ID           string    `json:"id" db:"id"`
	ScanResultID string    `json:"scan_result_id" db:"scan_result_id"`
	URLID        string    `json:"url_id" db:"url_id"`
	IsExposed    Exposure  `json:"is_exposed" db:"is_exposed"`
	ExposureRank *int      `json:"exposure_rank" db:"exposure_rank"`
	ResponseCode *int      `json:"response_code" db:"response_code"`
	ScannedAt    time.Time `json:"scanned_at" db:"scanned_at"`
}
