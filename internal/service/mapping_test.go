package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workpaper-web/internal/models"
)

func TestResolveColumnMapping_StandardHeaders(t *testing.T) {
	headers := []string{
		"Account Number", "Account Name", "Currency",
		"Opening Debit", "Opening Credit", "Period Debit", "Period Credit",
		"YTD Debit", "YTD Credit", "Entity", "Department", "Project", "Notes",
	}

	mapping := ResolveColumnMapping(headers)

	assert.Equal(t, "Account Number", mapping.AccountNumber)
	assert.Equal(t, "Account Name", mapping.AccountName)
	assert.Equal(t, "Currency", mapping.Currency)
	assert.Equal(t, "Opening Debit", mapping.OpeningDebit)
	assert.Equal(t, "Opening Credit", mapping.OpeningCredit)
	assert.Equal(t, "Period Debit", mapping.PeriodDebit)
	assert.Equal(t, "Period Credit", mapping.PeriodCredit)
	assert.Equal(t, "YTD Debit", mapping.YTDDebit)
	assert.Equal(t, "YTD Credit", mapping.YTDCredit)
	assert.Equal(t, "Entity", mapping.Entity)
	assert.Equal(t, "Department", mapping.Department)
	assert.Equal(t, "Project", mapping.Project)
	assert.Equal(t, "Notes", mapping.Notes)
}

func TestResolveColumnMapping_AbbreviatedHeaders(t *testing.T) {
	headers := []string{"Account No", "Acct Name", "YTD Debit", "YTD Credit"}

	mapping := ResolveColumnMapping(headers)

	assert.Equal(t, "Account No", mapping.AccountNumber)
	assert.Equal(t, "Acct Name", mapping.AccountName)
	assert.Equal(t, "YTD Debit", mapping.YTDDebit)
	assert.Equal(t, "YTD Credit", mapping.YTDCredit)
	assert.Empty(t, mapping.Currency)
	assert.Empty(t, mapping.OpeningDebit)
	assert.Empty(t, mapping.OpeningCredit)
	assert.Empty(t, mapping.Entity)
	assert.Empty(t, mapping.Notes)
}

func TestResolveColumnMapping_NoHeaderBoundTwice(t *testing.T) {
	// "Description" matches both account name and, without claiming,
	// could be re-bound by a later field. It must appear exactly once.
	headers := []string{"Account Code", "Description", "Year Debit", "Year Credit"}

	mapping := ResolveColumnMapping(headers)

	assert.Equal(t, "Account Code", mapping.AccountNumber)
	assert.Equal(t, "Description", mapping.AccountName)
	assert.Equal(t, "Year Debit", mapping.YTDDebit)
	assert.Equal(t, "Year Credit", mapping.YTDCredit)

	bound := mappedHeaders(mapping)
	seen := make(map[string]int)
	for _, h := range bound {
		seen[h]++
	}
	for header, count := range seen {
		assert.Equal(t, 1, count, "header %q bound more than once", header)
	}
}

func TestResolveColumnMapping_Deterministic(t *testing.T) {
	headers := []string{"Acct No", "Account Desc", "Opening Debit", "CCY", "Dept"}

	first := ResolveColumnMapping(headers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ResolveColumnMapping(headers))
	}
}

func TestResolveColumnMapping_UnmatchedHeadersLeftUnbound(t *testing.T) {
	mapping := ResolveColumnMapping([]string{"Foo", "Bar", "Baz"})
	assert.Equal(t, models.ColumnMapping{}, mapping)
}

func TestSuggestFields_CloseHeader(t *testing.T) {
	headers := []string{"Acount Number", "Account Name"}
	mapping := ResolveColumnMapping(headers)
	require.Empty(t, mapping.AccountNumber, "typo header must not pattern-match")

	suggestions := SuggestFields(headers, mapping)

	var found *models.MappingSuggestion
	for i := range suggestions {
		if suggestions[i].Field == FieldAccountNumber {
			found = &suggestions[i]
		}
	}
	require.NotNil(t, found, "expected a suggestion for the account number field")
	assert.Equal(t, "Acount Number", found.Header)
	assert.LessOrEqual(t, found.Distance, len("account number")/2)
}

func TestSuggestFields_SkipsMappedFieldsAndClaimedHeaders(t *testing.T) {
	headers := []string{"Account Number", "Account Name"}
	mapping := ResolveColumnMapping(headers)

	suggestions := SuggestFields(headers, mapping)

	for _, s := range suggestions {
		assert.NotEqual(t, FieldAccountNumber, s.Field)
		assert.NotEqual(t, FieldAccountName, s.Field)
		assert.NotEqual(t, "Account Number", s.Header)
		assert.NotEqual(t, "Account Name", s.Header)
	}
}

func TestSuggestFields_DistantHeadersProduceNothing(t *testing.T) {
	headers := []string{"zzzzzzzzzzzzzzzzzz"}
	suggestions := SuggestFields(headers, models.ColumnMapping{})
	assert.Empty(t, suggestions)
}
