package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"workpaper-web/internal/models"

	"github.com/xuri/excelize/v2"
)

// Supported payload formats.
const (
	FormatCSV      = "csv"
	FormatTSV      = "tsv"
	FormatWorkbook = "workbook"
)

// TabularService turns raw uploads into the normalized Sheet shape. The
// workbook decoder (excelize) is a direct dependency of the service, not a
// lazily-injected global.
type TabularService struct{}

func NewTabularService() *TabularService {
	return &TabularService{}
}

// ParseTabularPayload parses raw bytes in the given format and returns one
// Sheet per worksheet. Text formats always yield a single sheet named
// "Sheet1". Returns a ParseError for corrupt workbooks or when no sheet
// contains any rows.
func (s *TabularService) ParseTabularPayload(data []byte, format string) ([]models.Sheet, error) {
	switch format {
	case FormatCSV:
		return s.parseDelimited(data, ",")
	case FormatTSV:
		return s.parseDelimited(data, "\t")
	case FormatWorkbook:
		return s.parseWorkbook(data)
	default:
		return nil, models.NewParseError("unsupported format: %s", format)
	}
}

// ParseFile parses a file on disk, choosing the format from its extension.
func (s *TabularService) ParseFile(filePath string) ([]models.Sheet, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv", ".txt":
		return s.ParseTabularPayload(data, FormatCSV)
	case ".tsv":
		return s.ParseTabularPayload(data, FormatTSV)
	case ".xlsx", ".xls":
		return s.ParseTabularPayload(data, FormatWorkbook)
	default:
		return nil, models.NewParseError("unsupported file type: %s", filepath.Ext(filePath))
	}
}

// parseDelimited splits text on the delimiter. Splitting is deliberately
// naive: a single pair of wrapping double quotes is stripped, but delimiters
// inside quotes are NOT protected. Downstream column counts depend on this
// behavior, so it is preserved rather than fixed.
func (s *TabularService) parseDelimited(data []byte, delimiter string) ([]models.Sheet, error) {
	var grid [][]*string

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue // blank lines are dropped, not kept as empty rows
		}

		cells := strings.Split(line, delimiter)
		row := make([]*string, len(cells))
		for i, cell := range cells {
			row[i] = normalizeCell(cell)
		}
		grid = append(grid, row)
	}

	if len(grid) == 0 {
		return nil, models.NewParseError("input contains no rows")
	}

	return []models.Sheet{gridToSheet("Sheet1", grid)}, nil
}

// parseWorkbook decodes an Excel container and yields every sheet that has at
// least one row.
func (s *TabularService) parseWorkbook(data []byte) ([]models.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewParseError("failed to decode workbook: %v", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, models.NewParseError("workbook contains no sheets")
	}

	var sheets []models.Sheet
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, models.NewParseError("failed to read sheet %q: %v", name, err)
		}
		if len(rows) == 0 {
			continue
		}

		grid := make([][]*string, 0, len(rows))
		for _, cells := range rows {
			row := make([]*string, len(cells))
			for i, cell := range cells {
				row[i] = normalizeCell(cell)
			}
			grid = append(grid, row)
		}
		sheets = append(sheets, gridToSheet(name, grid))
	}

	if len(sheets) == 0 {
		return nil, models.NewParseError("workbook contains no rows")
	}

	return sheets, nil
}

// normalizeCell trims whitespace, strips a single pair of wrapping double
// quotes, and maps empty cells to nil.
func normalizeCell(cell string) *string {
	value := strings.TrimSpace(cell)
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	if value == "" {
		return nil
	}
	return &value
}

// gridToSheet splits row 0 off as the header row. Empty header cells get a
// positional fallback name. Data rows are padded to the header width so every
// row is rectangular.
func gridToSheet(name string, grid [][]*string) models.Sheet {
	headerRow := grid[0]
	headers := make([]string, len(headerRow))
	for i, cell := range headerRow {
		if cell == nil {
			headers[i] = fmt.Sprintf("Column %d", i+1)
		} else {
			headers[i] = *cell
		}
	}

	rows := make([][]*string, 0, len(grid)-1)
	for _, row := range grid[1:] {
		if len(row) < len(headers) {
			padded := make([]*string, len(headers))
			copy(padded, row)
			row = padded
		}
		rows = append(rows, row)
	}

	return models.Sheet{Name: name, Headers: headers, Rows: rows}
}
