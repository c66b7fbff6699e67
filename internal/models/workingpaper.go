package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account categories assigned by the classifier.
const (
	CategoryAssets      = "assets"
	CategoryLiabilities = "liabilities"
	CategoryEquity      = "equity"
	CategoryRevenue     = "revenue"
	CategoryExpenses    = "expenses"
	CategoryOther       = "other"
)

// AccountBalance is one trial-balance line. Debit and credit amounts are kept
// separate per double-entry convention, never netted in storage.
type AccountBalance struct {
	AccountNumber  string          `json:"account_number"`
	AccountName    string          `json:"account_name"`
	Currency       string          `json:"currency"`
	OpeningDebit   decimal.Decimal `json:"opening_debit"`
	OpeningCredit  decimal.Decimal `json:"opening_credit"`
	PeriodDebit    decimal.Decimal `json:"period_debit"`
	PeriodCredit   decimal.Decimal `json:"period_credit"`
	YTDDebit       decimal.Decimal `json:"ytd_debit"`
	YTDCredit      decimal.Decimal `json:"ytd_credit"`
	Entity         string          `json:"entity"`
	Department     string          `json:"department"`
	Project        string          `json:"project"`
	Notes          string          `json:"notes"`
	AdjustmentOnly bool            `json:"adjustment_only,omitempty"`
}

// Leadsheet summarizes opening balance, adjustments and closing balance for a
// set of accounts. closing = opening + adjustments + net movement of the
// non-adjustment accounts, with every term signed by account nature.
type Leadsheet struct {
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	Adjustments    decimal.Decimal  `json:"adjustments"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
	Accounts       []AccountBalance `json:"accounts"`
	CreatedAt      time.Time        `json:"created_at"`
}

// FinancialRatio carries a precomputed value; Formula is a human-readable
// description, not something that is evaluated.
type FinancialRatio struct {
	Name    string  `json:"name"`
	Formula string  `json:"formula"`
	Value   float64 `json:"value"`
}

// TrendAnalysis compares one account's current YTD balance against the prior
// period.
type TrendAnalysis struct {
	AccountNumber    string          `json:"account_number"`
	AccountName      string          `json:"account_name"`
	CurrentPeriod    decimal.Decimal `json:"current_period"`
	PriorPeriod      decimal.Decimal `json:"prior_period"`
	Variance         decimal.Decimal `json:"variance"`
	PercentageChange float64         `json:"percentage_change"`
}

// VarianceAnalysis compares one account's actual YTD balance against an
// expected value.
type VarianceAnalysis struct {
	AccountNumber      string          `json:"account_number"`
	AccountName        string          `json:"account_name"`
	Actual             decimal.Decimal `json:"actual"`
	Expected           decimal.Decimal `json:"expected"`
	Variance           decimal.Decimal `json:"variance"`
	PercentageVariance float64         `json:"percentage_variance"`
}

// TrialBalanceCheck reports whether the selected accounts balance.
type TrialBalanceCheck struct {
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Difference   decimal.Decimal `json:"difference"`
	IsBalanced   bool            `json:"is_balanced"`
	AccountCount int             `json:"account_count"`
}

// WorkingPaper bundles one leadsheet with its computed analyses and opaque
// supporting-document references. Collections are replaced wholesale on
// update, never patched.
type WorkingPaper struct {
	ID                  int                `db:"id" json:"id"`
	EngagementID        string             `db:"engagement_id" json:"engagement_id"`
	DatasetID           *int               `db:"dataset_id" json:"dataset_id,omitempty"`
	Name                string             `db:"name" json:"name"`
	Description         string             `db:"description" json:"description"`
	Leadsheet           *Leadsheet         `db:"-" json:"leadsheet,omitempty"`
	BalanceCheck        *TrialBalanceCheck `db:"-" json:"balance_check,omitempty"`
	Ratios              []FinancialRatio   `db:"-" json:"ratios"`
	TrendAnalysis       []TrendAnalysis    `db:"-" json:"trend_analysis"`
	VarianceAnalysis    []VarianceAnalysis `db:"-" json:"variance_analysis"`
	SupportingDocuments []string           `db:"-" json:"supporting_documents"`
	CreatedBy           int                `db:"created_by" json:"created_by"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
}
