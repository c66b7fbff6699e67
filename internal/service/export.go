package service

import (
	"bytes"
	"fmt"

	"workpaper-web/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportService renders working papers to Excel workbooks.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportWorkingPaper builds an Excel workbook with one sheet per analysis
// section and returns it as an in-memory buffer ready to stream to a client.
func (s *ExportService) ExportWorkingPaper(wp *models.WorkingPaper) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := s.writeLeadsheet(f, wp)
	if err != nil {
		return nil, err
	}
	if err := s.writeRatios(f, wp.Ratios); err != nil {
		return nil, err
	}
	if err := s.writeTrend(f, wp.TrendAnalysis); err != nil {
		return nil, err
	}
	if err := s.writeVariance(f, wp.VarianceAnalysis); err != nil {
		return nil, err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.WriteToBuffer()
}

func (s *ExportService) writeLeadsheet(f *excelize.File, wp *models.WorkingPaper) (int, error) {
	sheetName := "Leadsheet"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return 0, err
	}

	headers := []string{
		"Account Number", "Account Name", "Category", "Currency",
		"Opening Debit", "Opening Credit", "Period Debit", "Period Credit",
		"YTD Debit", "YTD Credit", "Entity", "Department", "Project", "Notes",
	}
	writeHeaderRow(f, sheetName, headers)

	var accounts []models.AccountBalance
	if wp.Leadsheet != nil {
		accounts = wp.Leadsheet.Accounts
	}

	for rowIdx, acc := range accounts {
		row := rowIdx + 2
		values := []interface{}{
			acc.AccountNumber,
			acc.AccountName,
			ClassifyAccount(acc.AccountNumber).Category,
			acc.Currency,
			acc.OpeningDebit.InexactFloat64(),
			acc.OpeningCredit.InexactFloat64(),
			acc.PeriodDebit.InexactFloat64(),
			acc.PeriodCredit.InexactFloat64(),
			acc.YTDDebit.InexactFloat64(),
			acc.YTDCredit.InexactFloat64(),
			acc.Entity,
			acc.Department,
			acc.Project,
			acc.Notes,
		}
		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", excelColumn(colIdx), row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Summary block below the account rows
	summaryRow := len(accounts) + 3
	if wp.Leadsheet != nil {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Opening Balance:")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), wp.Leadsheet.OpeningBalance.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Adjustments:")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), wp.Leadsheet.Adjustments.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+2), "Closing Balance:")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+2), wp.Leadsheet.ClosingBalance.InexactFloat64())
		summaryRow += 4
	}
	if wp.BalanceCheck != nil {
		balancedStr := "No"
		if wp.BalanceCheck.IsBalanced {
			balancedStr = "Yes"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total Debits:")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), wp.BalanceCheck.TotalDebits.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Total Credits:")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), wp.BalanceCheck.TotalCredits.InexactFloat64())
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+2), "Balanced:")
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+2), balancedStr)
	}

	columnWidths := []float64{18, 30, 14, 10, 15, 15, 15, 15, 15, 15, 15, 15, 15, 30}
	for i, width := range columnWidths {
		colName := excelColumn(i)
		f.SetColWidth(sheetName, colName, colName, width)
	}

	numericStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})
	for col := 4; col <= 9; col++ {
		colName := excelColumn(col)
		f.SetColStyle(sheetName, colName, numericStyle)
	}

	return index, nil
}

func (s *ExportService) writeRatios(f *excelize.File, ratios []models.FinancialRatio) error {
	sheetName := "Ratios"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	writeHeaderRow(f, sheetName, []string{"Name", "Formula", "Value"})
	for rowIdx, r := range ratios {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Formula)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Value)
	}

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "B", 50)
	f.SetColWidth(sheetName, "C", "C", 15)
	return nil
}

func (s *ExportService) writeTrend(f *excelize.File, trends []models.TrendAnalysis) error {
	sheetName := "Trend Analysis"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	writeHeaderRow(f, sheetName, []string{
		"Account Number", "Account Name", "Current Period", "Prior Period", "Variance", "Change %",
	})
	for rowIdx, t := range trends {
		row := rowIdx + 2
		values := []interface{}{
			t.AccountNumber,
			t.AccountName,
			t.CurrentPeriod.InexactFloat64(),
			t.PriorPeriod.InexactFloat64(),
			t.Variance.InexactFloat64(),
			t.PercentageChange,
		}
		for colIdx, value := range values {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", excelColumn(colIdx), row), value)
		}
	}

	for i, width := range []float64{18, 30, 18, 18, 15, 12} {
		colName := excelColumn(i)
		f.SetColWidth(sheetName, colName, colName, width)
	}
	return nil
}

func (s *ExportService) writeVariance(f *excelize.File, variances []models.VarianceAnalysis) error {
	sheetName := "Variance Analysis"
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	writeHeaderRow(f, sheetName, []string{
		"Account Number", "Account Name", "Actual", "Expected", "Variance", "Variance %",
	})
	for rowIdx, v := range variances {
		row := rowIdx + 2
		values := []interface{}{
			v.AccountNumber,
			v.AccountName,
			v.Actual.InexactFloat64(),
			v.Expected.InexactFloat64(),
			v.Variance.InexactFloat64(),
			v.PercentageVariance,
		}
		for colIdx, value := range values {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", excelColumn(colIdx), row), value)
		}
	}

	for i, width := range []float64{18, 30, 18, 18, 15, 12} {
		colName := excelColumn(i)
		f.SetColWidth(sheetName, colName, colName, width)
	}
	return nil
}

func writeHeaderRow(f *excelize.File, sheetName string, headers []string) {
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", excelColumn(i))
		f.SetCellValue(sheetName, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", excelColumn(len(headers)-1)), headerStyle)
}

func excelColumn(index int) string {
	result := ""
	for index >= 0 {
		result = string(rune('A'+(index%26))) + result
		index = index/26 - 1
	}
	return result
}
