// Command gentemplate generates the Excel import template for keywords.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Keywords"); err != nil {
		log.Fatal(err)
	}

	headers := []string{"keyword", "category", "priority", "urls"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Keywords", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	examples := [][]string{
		{"폐암 치료", "cancer", "1", "https://example.com/lung;https://blog.example.com/lung-care"},
		{"당뇨 식단", "diabetes", "3", ""},
	}
	for r, row := range examples {
		for i, v := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				log.Fatal(err)
			}
			if err := f.SetCellValue("Keywords", cell, v); err != nil {
				log.Fatal(err)
			}
		}
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"keyword - Required. The search keyword to monitor",
		"category - Required. Category name (must already exist)",
		"priority - Optional. 1 (highest) to 5 (lowest), default 3",
		"urls - Optional. Target URLs separated by ';' (must start with http:// or https://)",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}

	if err := f.SaveAs("examples/keyword-import-template.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/keyword-import-template.xlsx")
}
