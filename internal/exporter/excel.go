// Package exporter renders keyword dashboard records as an Excel
// workbook for download.
package exporter

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/keyword-monitor/internal/stats"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single data sheet of the export workbook.
const SheetName = "Keywords"

// Headers are the Korean column labels the dashboard users expect.
var Headers = []string{"키워드", "카테고리", "노출 상태", "노출 URL 수", "전체 URL 수", "URL 목록"}

// BuildWorkbook renders the records into a workbook, one row per
// keyword, URLs joined with newlines. The caller owns the returned file
// and must Close it.
func BuildWorkbook(records []stats.KeywordRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, record := range records {
		urls := make([]string, 0, len(record.URLs))
		for _, u := range record.URLs {
			urls = append(urls, u.URL)
		}
		values := []any{
			record.Keyword,
			record.CategoryName,
			string(record.ExposureStatus),
			record.ExposedURLs,
			record.TotalURLs,
			strings.Join(urls, "\n"),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	return f, nil
}
