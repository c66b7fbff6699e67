package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workpaper-web/internal/models"
)

func strPtr(s string) *string {
	return &s
}

func trialBalanceSheet() models.Sheet {
	return models.Sheet{
		Name:    "Sheet1",
		Headers: []string{"Account Number", "Account Name", "YTD Debit", "YTD Credit"},
		Rows: [][]*string{
			{strPtr("1010"), strPtr("Cash"), strPtr("1,500.00"), strPtr("0")},
			{strPtr("2010"), strPtr("Payables"), strPtr("0"), strPtr("$1,500.00")},
			{nil, strPtr("orphan line"), strPtr("99"), strPtr("99")},
			{strPtr("4100"), strPtr("Sales"), nil, strPtr("250")},
		},
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1,500.00", "1500"},
		{"$2,000", "2000"},
		{"€ 3 500", "3500"},
		{"£12.50", "12.5"},
		{"-42.10", "-42.1"},
		{"", "0"},
		{"   ", "0"},
		{"-", "0"},
		{"n/a", "0"},
	}

	for _, tt := range tests {
		want, err := decimal.NewFromString(tt.want)
		require.NoError(t, err)
		assert.True(t, ParseAmount(tt.raw).Equal(want), "ParseAmount(%q) = %s, want %s", tt.raw, ParseAmount(tt.raw), want)
	}
}

func TestExtractAccounts(t *testing.T) {
	sheet := trialBalanceSheet()
	mapping := ResolveColumnMapping(sheet.Headers)

	accounts, err := ExtractAccounts(sheet, mapping)
	require.NoError(t, err)
	require.Len(t, accounts, 3, "row without an account number is skipped")

	assert.Equal(t, "1010", accounts[0].AccountNumber)
	assert.Equal(t, "Cash", accounts[0].AccountName)
	assert.True(t, accounts[0].YTDDebit.Equal(decimal.NewFromInt(1500)))

	assert.Equal(t, "2010", accounts[1].AccountNumber)
	assert.True(t, accounts[1].YTDCredit.Equal(decimal.NewFromInt(1500)))

	assert.Equal(t, "4100", accounts[2].AccountNumber)
	assert.True(t, accounts[2].YTDDebit.IsZero(), "null amount cell parses to zero")
	assert.True(t, accounts[2].YTDCredit.Equal(decimal.NewFromInt(250)))
}

func TestExtractAccounts_PreservesRowOrder(t *testing.T) {
	sheet := trialBalanceSheet()
	mapping := ResolveColumnMapping(sheet.Headers)

	accounts, err := ExtractAccounts(sheet, mapping)
	require.NoError(t, err)

	numbers := make([]string, len(accounts))
	for i, acc := range accounts {
		numbers[i] = acc.AccountNumber
	}
	assert.Equal(t, []string{"1010", "2010", "4100"}, numbers)
}

func TestExtractAccounts_UnmappedFieldsLeftZero(t *testing.T) {
	sheet := trialBalanceSheet()
	mapping := ResolveColumnMapping(sheet.Headers)

	accounts, err := ExtractAccounts(sheet, mapping)
	require.NoError(t, err)

	assert.Empty(t, accounts[0].Currency)
	assert.Empty(t, accounts[0].Entity)
	assert.True(t, accounts[0].OpeningDebit.IsZero())
	assert.True(t, accounts[0].PeriodCredit.IsZero())
}

func TestExtractAccounts_MissingRequiredMapping(t *testing.T) {
	sheet := trialBalanceSheet()

	_, err := ExtractAccounts(sheet, models.ColumnMapping{AccountName: "Account Name"})
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "account_number", validationErr.Field)

	_, err = ExtractAccounts(sheet, models.ColumnMapping{AccountNumber: "Account Number"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "account_name", validationErr.Field)
}
