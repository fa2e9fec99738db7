// Package importer parses keyword bulk-import Excel workbooks into
// registration entries.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonesrussell/keyword-monitor/internal/models"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
	"github.com/xuri/excelize/v2"
)

// Column indices for the import spreadsheet (0-based).
const (
	colKeyword  = 0 // Column A
	colCategory = 1 // Column B
	colPriority = 2 // Column C
	colURLs     = 3 // Column D, semicolon-separated

	headerRowIndex = 1 // Excel rows are 1-based, header is row 1
)

// URLSeparator splits the URL list cell.
const URLSeparator = ";"

// KeywordRow represents a parsed row from the Excel spreadsheet.
type KeywordRow struct {
	Row      int // Excel row number (for error reporting)
	Keyword  string
	Category string
	Priority int
	URLs     []string
}

// ValidateRow validates a single row and returns an error message or
// empty string.
func ValidateRow(row KeywordRow) string {
	if strings.TrimSpace(row.Keyword) == "" {
		return "keyword is required"
	}
	if strings.TrimSpace(row.Category) == "" {
		return "category is required"
	}
	if !models.ValidPriority(row.Priority) {
		return "priority must be between 1 and 5"
	}
	for _, u := range row.URLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Sprintf("url %q must start with http:// or https://", u)
		}
	}
	return ""
}

// Parse reads an xlsx workbook and returns the valid rows as bulk
// entries plus an error string per rejected row. Only the first sheet is
// read; the header row and fully empty rows are skipped.
func Parse(r io.Reader) ([]repository.BulkEntry, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var (
		entries   []repository.BulkEntry
		rowErrors []string
	)
	for i, cells := range rows {
		rowNum := i + 1
		if rowNum == headerRowIndex {
			continue
		}
		if emptyRow(cells) {
			continue
		}

		row, err := parseRow(rowNum, cells)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if msg := ValidateRow(row); msg != "" {
			rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", rowNum, msg))
			continue
		}

		entries = append(entries, repository.BulkEntry{
			KeywordText:  row.Keyword,
			CategoryName: row.Category,
			Priority:     row.Priority,
			URLs:         row.URLs,
		})
	}

	return entries, rowErrors, nil
}

func parseRow(rowNum int, cells []string) (KeywordRow, error) {
	row := KeywordRow{
		Row:      rowNum,
		Keyword:  strings.TrimSpace(cell(cells, colKeyword)),
		Category: strings.TrimSpace(cell(cells, colCategory)),
		Priority: models.PriorityDefault,
	}

	if raw := strings.TrimSpace(cell(cells, colPriority)); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return row, fmt.Errorf("priority %q is not a number", raw)
		}
		row.Priority = p
	}

	for _, u := range strings.Split(cell(cells, colURLs), URLSeparator) {
		u = strings.TrimSpace(u)
		if u != "" {
			row.URLs = append(row.URLs, u)
		}
	}

	return row, nil
}

// cell returns the value at idx or "" when the row is short. excelize
// trims trailing empty cells from GetRows output.
func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
