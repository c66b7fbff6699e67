package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workpaper-web/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func account(number, name string, openingDebit, openingCredit, ytdDebit, ytdCredit string) models.AccountBalance {
	return models.AccountBalance{
		AccountNumber: number,
		AccountName:   name,
		OpeningDebit:  dec(openingDebit),
		OpeningCredit: dec(openingCredit),
		YTDDebit:      dec(ytdDebit),
		YTDCredit:     dec(ytdCredit),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "got %s, want %s", got, want)
}

func TestBuildWorkingPaper_EmptySelection(t *testing.T) {
	svc := NewAnalysisService()

	_, err := svc.BuildWorkingPaper(nil, nil, nil)
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestBuildWorkingPaper_LeadsheetIdentity(t *testing.T) {
	svc := NewAnalysisService()
	// Asset opened at 100 debit, ended at 150 YTD debit: movement +50.
	// Liability opened at 80 credit, ended at 60: movement -20.
	selected := []models.AccountBalance{
		account("1010", "Cash", "100", "0", "150", "0"),
		account("2010", "Payables", "0", "80", "0", "60"),
	}

	wp, err := svc.BuildWorkingPaper(selected, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, wp.Leadsheet)

	ls := wp.Leadsheet
	assertDecimal(t, "180", ls.OpeningBalance)
	assertDecimal(t, "0", ls.Adjustments)
	assertDecimal(t, "210", ls.ClosingBalance)
	assert.Len(t, ls.Accounts, 2)
	assert.False(t, ls.CreatedAt.IsZero())

	movement := ls.ClosingBalance.Sub(ls.OpeningBalance).Sub(ls.Adjustments)
	assertDecimal(t, "30", movement)
}

func TestBuildWorkingPaper_AdjustmentOnlyAccounts(t *testing.T) {
	svc := NewAnalysisService()
	adjusting := account("5100", "Audit Adjustments", "0", "0", "25", "0")
	adjusting.AdjustmentOnly = true
	selected := []models.AccountBalance{
		account("1010", "Cash", "100", "0", "150", "0"),
		adjusting,
	}

	wp, err := svc.BuildWorkingPaper(selected, nil, nil)
	require.NoError(t, err)

	ls := wp.Leadsheet
	assertDecimal(t, "100", ls.OpeningBalance)
	assertDecimal(t, "25", ls.Adjustments)
	assertDecimal(t, "175", ls.ClosingBalance)
}

func TestBuildWorkingPaper_TrialBalanceCheck(t *testing.T) {
	svc := NewAnalysisService()

	balanced := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "500", "0"),
		account("4100", "Sales", "0", "0", "0", "500"),
	}
	wp, err := svc.BuildWorkingPaper(balanced, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, wp.BalanceCheck)
	assert.True(t, wp.BalanceCheck.IsBalanced)
	assertDecimal(t, "500", wp.BalanceCheck.TotalDebits)
	assertDecimal(t, "500", wp.BalanceCheck.TotalCredits)
	assertDecimal(t, "0", wp.BalanceCheck.Difference)
	assert.Equal(t, 2, wp.BalanceCheck.AccountCount)

	unbalanced := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "500", "0"),
		account("4100", "Sales", "0", "0", "0", "400"),
	}
	wp, err = svc.BuildWorkingPaper(unbalanced, nil, nil)
	require.NoError(t, err)
	assert.False(t, wp.BalanceCheck.IsBalanced)
	assertDecimal(t, "100", wp.BalanceCheck.Difference)
}

func TestBuildWorkingPaper_TrendAnalysis(t *testing.T) {
	svc := NewAnalysisService()
	selected := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "100", "0"),
		account("1020", "Receivables", "0", "0", "50", "0"),
	}
	prior := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "80", "0"),
	}

	wp, err := svc.BuildWorkingPaper(selected, prior, nil)
	require.NoError(t, err)

	require.Len(t, wp.TrendAnalysis, 1, "accounts without a prior counterpart produce no row")
	trend := wp.TrendAnalysis[0]
	assert.Equal(t, "1010", trend.AccountNumber)
	assertDecimal(t, "100", trend.CurrentPeriod)
	assertDecimal(t, "80", trend.PriorPeriod)
	assertDecimal(t, "20", trend.Variance)
	assert.InDelta(t, 25.0, trend.PercentageChange, 1e-9)
}

func TestBuildWorkingPaper_TrendPercentageZeroBase(t *testing.T) {
	svc := NewAnalysisService()
	selected := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "100", "0"),
	}
	prior := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "0", "0"),
	}

	wp, err := svc.BuildWorkingPaper(selected, prior, nil)
	require.NoError(t, err)
	require.Len(t, wp.TrendAnalysis, 1)
	assert.Zero(t, wp.TrendAnalysis[0].PercentageChange)
}

func TestBuildWorkingPaper_VarianceAnalysis(t *testing.T) {
	svc := NewAnalysisService()
	selected := []models.AccountBalance{
		account("4100", "Sales", "0", "0", "0", "900"),
	}
	expected := []models.AccountBalance{
		account("4100", "Sales", "0", "0", "0", "1000"),
	}

	wp, err := svc.BuildWorkingPaper(selected, nil, expected)
	require.NoError(t, err)

	require.Len(t, wp.VarianceAnalysis, 1)
	v := wp.VarianceAnalysis[0]
	assertDecimal(t, "900", v.Actual)
	assertDecimal(t, "1000", v.Expected)
	assertDecimal(t, "-100", v.Variance)
	assert.InDelta(t, -10.0, v.PercentageVariance, 1e-9)
}

func TestBuildWorkingPaper_Ratios(t *testing.T) {
	svc := NewAnalysisService()
	selected := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "300", "0"),
		account("2010", "Payables", "0", "0", "0", "100"),
		account("3000", "Equity", "0", "0", "0", "200"),
	}

	wp, err := svc.BuildWorkingPaper(selected, nil, nil)
	require.NoError(t, err)

	byName := make(map[string]models.FinancialRatio)
	for _, r := range wp.Ratios {
		byName[r.Name] = r
	}

	current, ok := byName["Current Ratio"]
	require.True(t, ok)
	assert.InDelta(t, 3.0, current.Value, 1e-9)

	debtEquity, ok := byName["Debt-to-Equity"]
	require.True(t, ok)
	assert.InDelta(t, 0.5, debtEquity.Value, 1e-9)

	avg, ok := byName["Average Balance"]
	require.True(t, ok)
	assert.InDelta(t, 200.0, avg.Value, 1e-9)

	activity, ok := byName["Total Activity"]
	require.True(t, ok)
	assert.InDelta(t, 600.0, activity.Value, 1e-9)
}

func TestBuildWorkingPaper_RatiosZeroDenominatorOmitted(t *testing.T) {
	svc := NewAnalysisService()
	selected := []models.AccountBalance{
		account("1010", "Cash", "0", "0", "300", "0"),
	}

	wp, err := svc.BuildWorkingPaper(selected, nil, nil)
	require.NoError(t, err)

	for _, r := range wp.Ratios {
		assert.NotEqual(t, "Current Ratio", r.Name)
		assert.NotEqual(t, "Debt-to-Equity", r.Name)
	}
}
