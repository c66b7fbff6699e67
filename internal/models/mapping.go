package models

// ColumnMapping binds each canonical trial-balance field to at most one source
// header. An empty string means the field is unmapped; callers may override
// individual bindings before use.
type ColumnMapping struct {
	AccountNumber string `json:"account_number,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	Currency      string `json:"currency,omitempty"`
	OpeningDebit  string `json:"opening_debit,omitempty"`
	OpeningCredit string `json:"opening_credit,omitempty"`
	PeriodDebit   string `json:"period_debit,omitempty"`
	PeriodCredit  string `json:"period_credit,omitempty"`
	YTDDebit      string `json:"ytd_debit,omitempty"`
	YTDCredit     string `json:"ytd_credit,omitempty"`
	Entity        string `json:"entity,omitempty"`
	Department    string `json:"department,omitempty"`
	Project       string `json:"project,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// MappingSuggestion is an advisory hint for a field the pattern table left
// unmapped. It never affects the binding pass.
type MappingSuggestion struct {
	Field    string `json:"field"`
	Header   string `json:"header"`
	Distance int    `json:"distance"`
}
