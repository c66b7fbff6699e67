package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workpaper-web/internal/models"
)

func TestParseTabularPayload_CSV(t *testing.T) {
	svc := NewTabularService()
	data := []byte("Account Number,Account Name,YTD Debit\n1010,Cash,100.50\n2010,Payables,\n")

	sheets, err := svc.ParseTabularPayload(data, FormatCSV)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, []string{"Account Number", "Account Name", "YTD Debit"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)

	require.NotNil(t, sheet.Rows[0][0])
	assert.Equal(t, "1010", *sheet.Rows[0][0])
	assert.Equal(t, "100.50", *sheet.Rows[0][2])
	assert.Nil(t, sheet.Rows[1][2], "empty cell becomes null")
}

func TestParseTabularPayload_TSV(t *testing.T) {
	svc := NewTabularService()
	data := []byte("A\tB\n1\t2\n")

	sheets, err := svc.ParseTabularPayload(data, FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, sheets[0].Headers)
	require.Len(t, sheets[0].Rows, 1)
	assert.Equal(t, "2", *sheets[0].Rows[0][1])
}

func TestParseTabularPayload_BlankLinesDropped(t *testing.T) {
	svc := NewTabularService()
	data := []byte("A,B\n\n1,2\n   \n3,4\n")

	sheets, err := svc.ParseTabularPayload(data, FormatCSV)
	require.NoError(t, err)
	assert.Len(t, sheets[0].Rows, 2)
}

func TestParseTabularPayload_QuotedCells(t *testing.T) {
	svc := NewTabularService()
	data := []byte("A,B\n\"Cash\",\"100\"\n")

	sheets, err := svc.ParseTabularPayload(data, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "Cash", *sheets[0].Rows[0][0])
	assert.Equal(t, "100", *sheets[0].Rows[0][1])
}

func TestParseTabularPayload_RaggedRowsPadded(t *testing.T) {
	svc := NewTabularService()
	data := []byte("A,B,C\n1,2\n")

	sheets, err := svc.ParseTabularPayload(data, FormatCSV)
	require.NoError(t, err)
	row := sheets[0].Rows[0]
	require.Len(t, row, 3)
	assert.Nil(t, row[2])
}

func TestParseTabularPayload_EmptyHeaderGetsPositionalName(t *testing.T) {
	svc := NewTabularService()
	data := []byte("A,,C\n1,2,3\n")

	sheets, err := svc.ParseTabularPayload(data, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Column 2", "C"}, sheets[0].Headers)
}

func TestParseTabularPayload_EmptyInput(t *testing.T) {
	svc := NewTabularService()

	_, err := svc.ParseTabularPayload([]byte("\n\n"), FormatCSV)
	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseTabularPayload_UnsupportedFormat(t *testing.T) {
	svc := NewTabularService()

	_, err := svc.ParseTabularPayload([]byte("a,b"), "parquet")
	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseTabularPayload_CorruptWorkbook(t *testing.T) {
	svc := NewTabularService()

	_, err := svc.ParseTabularPayload([]byte("not a zip archive"), FormatWorkbook)
	var parseErr *models.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseTabularPayload_HeaderOnly(t *testing.T) {
	svc := NewTabularService()

	sheets, err := svc.ParseTabularPayload([]byte("A,B,C\n"), FormatCSV)
	require.NoError(t, err)
	assert.Empty(t, sheets[0].Rows)
}
