package main

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Generates a sample trial balance workbook under storage/uploads for manual
// testing of the import and mapping flow.
func main() {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Trial Balance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		fmt.Printf("Error creating sheet: %v\n", err)
		return
	}

	headers := []string{
		"Account Number", "Account Name", "Currency",
		"Opening Debit", "Opening Credit", "Period Debit", "Period Credit",
		"YTD Debit", "YTD Credit", "Entity", "Department", "Notes",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", columnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", columnName(len(headers)-1)), headerStyle)

	// One account per category band plus an unclassifiable one.
	sampleData := [][]interface{}{
		{"1010", "Cash and Equivalents", "USD", 50000, 0, 12000, 2000, 62000, 2000, "HoldCo", "Treasury", ""},
		{"1200", "Accounts Receivable", "USD", 30000, 0, 8000, 5000, 38000, 5000, "HoldCo", "Sales", ""},
		{"2010", "Accounts Payable", "USD", 0, 25000, 3000, 9000, 3000, 34000, "HoldCo", "Purchasing", ""},
		{"3000", "Share Capital", "USD", 0, 40000, 0, 0, 0, 40000, "HoldCo", "", "no movement"},
		{"4100", "Product Revenue", "USD", 0, 0, 0, 45000, 0, 45000, "HoldCo", "Sales", ""},
		{"5100", "Salaries Expense", "USD", 0, 0, 28000, 0, 28000, 0, "HoldCo", "HR", ""},
		{"9999", "Suspense", "USD", 0, 0, 100, 100, 100, 100, "HoldCo", "", "to investigate"},
	}

	for rowIdx, rowData := range sampleData {
		row := rowIdx + 2
		for colIdx, value := range rowData {
			cell := fmt.Sprintf("%s%d", columnName(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	widths := []float64{16, 28, 10, 14, 14, 14, 14, 14, 14, 12, 12, 20}
	for i, width := range widths {
		col := columnName(i)
		f.SetColWidth(sheetName, col, col, width)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	outputPath := filepath.Join("storage", "uploads", "sample_trial_balance.xlsx")
	if err := f.SaveAs(outputPath); err != nil {
		fmt.Printf("Error saving file: %v\n", err)
		return
	}

	fmt.Printf("Sample file created: %s (%d rows)\n", outputPath, len(sampleData))
}

func columnName(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
