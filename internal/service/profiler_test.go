package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workpaper-web/internal/models"
)

func singleColumnSheet(header string, values []*string) models.Sheet {
	rows := make([][]*string, len(values))
	for i, v := range values {
		rows[i] = []*string{v}
	}
	return models.Sheet{Name: "Sheet1", Headers: []string{header}, Rows: rows}
}

func cells(values ...string) []*string {
	out := make([]*string, len(values))
	for i, v := range values {
		if v != "" {
			out[i] = strPtr(v)
		}
	}
	return out
}

func profileOne(t *testing.T, header string, values []*string) models.ColumnMetadata {
	t.Helper()
	columns := NewProfilerService().ProfileColumns(singleColumnSheet(header, values))
	require.Len(t, columns, 1)
	return columns[0]
}

func TestProfileColumns_CurrencyColumn(t *testing.T) {
	meta := profileOne(t, "Amount", cells("$100.50", "$200", "$1.25", "300"))

	assert.Equal(t, models.DataTypeCurrency, meta.DataType)
	require.NotNil(t, meta.MinValue)
	require.NotNil(t, meta.MaxValue)
	assert.Equal(t, "1.25", *meta.MinValue)
	assert.Equal(t, "300", *meta.MaxValue)
}

func TestProfileColumns_PlainDigitsAreCurrency(t *testing.T) {
	// The currency detector's dollar sign is optional and currency
	// precedes numeric, so unadorned non-negative figures land here.
	meta := profileOne(t, "Balance", cells("100", "200.5", "37"))
	assert.Equal(t, models.DataTypeCurrency, meta.DataType)
}

func TestProfileColumns_NumericColumn(t *testing.T) {
	meta := profileOne(t, "Delta", cells("-100", "-2.5", "-37", "1e3"))

	assert.Equal(t, models.DataTypeNumeric, meta.DataType)
	require.NotNil(t, meta.MinValue)
	require.NotNil(t, meta.MaxValue)
	assert.Equal(t, "-100", *meta.MinValue)
	assert.Equal(t, "1000", *meta.MaxValue)
}

func TestProfileColumns_DateColumn(t *testing.T) {
	meta := profileOne(t, "Posted", cells("2024-03-15", "2024-01-02", "2024/12/31"))

	assert.Equal(t, models.DataTypeDate, meta.DataType)
	require.NotNil(t, meta.MinValue)
	require.NotNil(t, meta.MaxValue)
	assert.Equal(t, "2024-01-02", *meta.MinValue)
	assert.Equal(t, "2024-12-31", *meta.MaxValue)
}

func TestProfileColumns_BooleanColumn(t *testing.T) {
	meta := profileOne(t, "Reconciled", cells("yes", "no", "YES", "true"))

	assert.Equal(t, models.DataTypeBoolean, meta.DataType)
	assert.Nil(t, meta.MinValue)
	assert.Nil(t, meta.MaxValue)
}

func TestProfileColumns_ThresholdIsStrict(t *testing.T) {
	// 7 of 10 matching is exactly 70%, which does not clear the bar.
	values := cells("-1", "-2", "-3", "-4", "-5", "-6", "-7", "a1", "b2", "c3")
	meta := profileOne(t, "Mixed", values)
	assert.Equal(t, models.DataTypeText, meta.DataType)

	// 8 of 10 does.
	values = cells("-1", "-2", "-3", "-4", "-5", "-6", "-7", "-8", "b2", "c3")
	meta = profileOne(t, "Mixed", values)
	assert.Equal(t, models.DataTypeNumeric, meta.DataType)
}

func TestProfileColumns_NullPercentAndUniqueCount(t *testing.T) {
	meta := profileOne(t, "Category", cells("Alpha1", "", "Alpha1", "Beta2"))

	assert.InDelta(t, 25.0, meta.NullPercent, 1e-9)
	assert.Equal(t, 2, meta.UniqueCount)
}

func TestProfileColumns_SampleValues(t *testing.T) {
	values := cells("a1", "b2", "a1", "c3", "d4", "e5", "f6", "g7")
	meta := profileOne(t, "Code", values)

	assert.Equal(t, []string{"a1", "b2", "c3", "d4", "e5"}, meta.SampleValues,
		"first five distinct values in first-seen order")
}

func TestProfileColumns_EmptyColumn(t *testing.T) {
	meta := profileOne(t, "Blank", cells("", "", ""))

	assert.Equal(t, models.DataTypeText, meta.DataType)
	assert.InDelta(t, 100.0, meta.NullPercent, 1e-9)
	assert.Equal(t, 0, meta.UniqueCount)
	assert.Empty(t, meta.SampleValues)
	assert.False(t, meta.IsPII)
	assert.Nil(t, meta.MinValue)
	assert.Nil(t, meta.MaxValue)
}

func TestProfileColumns_NoRows(t *testing.T) {
	meta := profileOne(t, "Empty", nil)

	assert.Equal(t, models.DataTypeText, meta.DataType)
	assert.InDelta(t, 100.0, meta.NullPercent, 1e-9)
	assert.Equal(t, 0, meta.UniqueCount)
}

func TestProfileColumns_UnparseableValuesExcludedFromExtremes(t *testing.T) {
	meta := profileOne(t, "Posted", cells("2024-03-15", "2024-06-01", "2024-08-20", "not a date"))

	assert.Equal(t, models.DataTypeDate, meta.DataType)
	require.NotNil(t, meta.MinValue)
	assert.Equal(t, "2024-03-15", *meta.MinValue)
	assert.Equal(t, "2024-08-20", *meta.MaxValue)
}

func TestProfileColumns_Idempotent(t *testing.T) {
	sheet := models.Sheet{
		Name:    "TB",
		Headers: []string{"Account Number", "Amount", "Posted"},
		Rows: [][]*string{
			{strPtr("1010"), strPtr("$100"), strPtr("2024-01-15")},
			{strPtr("2010"), strPtr("$250.75"), nil},
			{strPtr("4100"), nil, strPtr("2024-02-28")},
		},
	}
	svc := NewProfilerService()

	first := svc.ProfileColumns(sheet)
	second := svc.ProfileColumns(sheet)
	assert.Equal(t, first, second)
}

func TestProfileColumns_TypeIndependentOfRowOrder(t *testing.T) {
	values := cells("-1", "-2", "-3", "-4", "a1")
	forward := profileOne(t, "Mixed", values)

	reversed := make([]*string, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}
	backward := profileOne(t, "Mixed", reversed)

	assert.Equal(t, forward.DataType, backward.DataType)
	assert.Equal(t, forward.NullPercent, backward.NullPercent)
	assert.Equal(t, forward.UniqueCount, backward.UniqueCount)
}

func TestProfileColumns_PositionsAssigned(t *testing.T) {
	sheet := models.Sheet{
		Name:    "TB",
		Headers: []string{"A", "B", "C"},
		Rows:    [][]*string{{strPtr("1"), strPtr("2"), strPtr("3")}},
	}
	columns := NewProfilerService().ProfileColumns(sheet)

	require.Len(t, columns, 3)
	for i, col := range columns {
		assert.Equal(t, i, col.Position)
		assert.Equal(t, sheet.Headers[i], col.Name)
	}
}
