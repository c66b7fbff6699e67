package service

import (
	"time"

	"workpaper-web/internal/models"
	"workpaper-web/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AnalysisService derives leadsheets, ratios and comparative analyses from
// extracted account balances.
type AnalysisService struct {
	log *logrus.Logger
}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{log: utils.GetLogger()}
}

// signedOpening returns the opening balance signed by account nature: debit
// minus credit for debit-nature accounts, credit minus debit otherwise.
func signedOpening(acc models.AccountBalance) decimal.Decimal {
	if ClassifyAccount(acc.AccountNumber).IsDebitNature {
		return acc.OpeningDebit.Sub(acc.OpeningCredit)
	}
	return acc.OpeningCredit.Sub(acc.OpeningDebit)
}

// signedYTD returns the year-to-date balance signed by account nature.
func signedYTD(acc models.AccountBalance) decimal.Decimal {
	if ClassifyAccount(acc.AccountNumber).IsDebitNature {
		return acc.YTDDebit.Sub(acc.YTDCredit)
	}
	return acc.YTDCredit.Sub(acc.YTDDebit)
}

// BuildWorkingPaper computes the full analysis bundle for a selection of
// accounts. Prior and expected balances are optional; accounts with no
// counterpart there are simply left out of the corresponding analysis.
func (s *AnalysisService) BuildWorkingPaper(selected, prior, expected []models.AccountBalance) (*models.WorkingPaper, error) {
	if len(selected) == 0 {
		return nil, models.NewValidationError("accounts", "at least one account is required")
	}

	wp := &models.WorkingPaper{
		Leadsheet:        s.buildLeadsheet(selected),
		BalanceCheck:     s.checkTrialBalance(selected),
		Ratios:           s.computeRatios(selected),
		TrendAnalysis:    s.compareTrend(selected, prior),
		VarianceAnalysis: s.compareVariance(selected, expected),
	}

	s.log.WithFields(logrus.Fields{
		"accounts": len(selected),
		"trends":   len(wp.TrendAnalysis),
		"balanced": wp.BalanceCheck.IsBalanced,
	}).Info("working paper analysis computed")

	return wp, nil
}

// buildLeadsheet rolls the selection up into opening, adjustments and closing
// totals. Accounts flagged adjustment-only contribute their nature-signed
// movement to the adjustments line instead of the regular movement, so the
// identity closing = opening + adjustments + movement always holds.
func (s *AnalysisService) buildLeadsheet(accounts []models.AccountBalance) *models.Leadsheet {
	opening := decimal.Zero
	adjustments := decimal.Zero
	movement := decimal.Zero

	for _, acc := range accounts {
		open := signedOpening(acc)
		delta := signedYTD(acc).Sub(open)
		opening = opening.Add(open)
		if acc.AdjustmentOnly {
			adjustments = adjustments.Add(delta)
		} else {
			movement = movement.Add(delta)
		}
	}

	return &models.Leadsheet{
		OpeningBalance: opening,
		Adjustments:    adjustments,
		ClosingBalance: opening.Add(adjustments).Add(movement),
		Accounts:       accounts,
		CreatedAt:      time.Now(),
	}
}

// checkTrialBalance totals raw YTD debits against raw YTD credits across the
// selection. Signs are irrelevant here; the check is that the two columns of
// the double entry agree.
func (s *AnalysisService) checkTrialBalance(accounts []models.AccountBalance) *models.TrialBalanceCheck {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, acc := range accounts {
		debits = debits.Add(acc.YTDDebit)
		credits = credits.Add(acc.YTDCredit)
	}
	diff := debits.Sub(credits)
	return &models.TrialBalanceCheck{
		TotalDebits:  debits,
		TotalCredits: credits,
		Difference:   diff,
		IsBalanced:   diff.IsZero(),
		AccountCount: len(accounts),
	}
}

// computeRatios derives the standard ratio set from category totals of the
// nature-signed YTD balances. A ratio whose denominator is zero is omitted
// rather than reported as infinity or NaN.
func (s *AnalysisService) computeRatios(accounts []models.AccountBalance) []models.FinancialRatio {
	totals := make(map[string]decimal.Decimal)
	activity := decimal.Zero
	movement := decimal.Zero

	for _, acc := range accounts {
		class := ClassifyAccount(acc.AccountNumber)
		totals[class.Category] = totals[class.Category].Add(signedYTD(acc))
		activity = activity.Add(acc.YTDDebit).Add(acc.YTDCredit)
		movement = movement.Add(signedYTD(acc).Sub(signedOpening(acc)))
	}

	ratios := []models.FinancialRatio{}

	if !totals[models.CategoryLiabilities].IsZero() {
		ratios = append(ratios, models.FinancialRatio{
			Name:    "Current Ratio",
			Formula: "total assets / total liabilities",
			Value:   totals[models.CategoryAssets].Div(totals[models.CategoryLiabilities]).InexactFloat64(),
		})
	}
	if !totals[models.CategoryEquity].IsZero() {
		ratios = append(ratios, models.FinancialRatio{
			Name:    "Debt-to-Equity",
			Formula: "total liabilities / total equity",
			Value:   totals[models.CategoryLiabilities].Div(totals[models.CategoryEquity]).InexactFloat64(),
		})
	}
	ratios = append(ratios,
		models.FinancialRatio{
			Name:    "Net Movement",
			Formula: "sum of nature-signed YTD minus opening balances",
			Value:   movement.InexactFloat64(),
		},
		models.FinancialRatio{
			Name:    "Total Activity",
			Formula: "sum of YTD debits and credits",
			Value:   activity.InexactFloat64(),
		},
		models.FinancialRatio{
			Name:    "Average Balance",
			Formula: "sum of nature-signed YTD balances / account count",
			Value: sumSignedYTD(accounts).
				Div(decimal.NewFromInt(int64(len(accounts)))).InexactFloat64(),
		},
	)

	return ratios
}

func sumSignedYTD(accounts []models.AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(signedYTD(acc))
	}
	return total
}

// compareTrend matches each selected account against the prior period by
// account number. Accounts missing from the prior set produce no row.
func (s *AnalysisService) compareTrend(selected, prior []models.AccountBalance) []models.TrendAnalysis {
	priorByNumber := indexByNumber(prior)
	trends := []models.TrendAnalysis{}

	for _, acc := range selected {
		prev, ok := priorByNumber[acc.AccountNumber]
		if !ok {
			continue
		}
		current := signedYTD(acc)
		previous := signedYTD(prev)
		variance := current.Sub(previous)
		trends = append(trends, models.TrendAnalysis{
			AccountNumber:    acc.AccountNumber,
			AccountName:      acc.AccountName,
			CurrentPeriod:    current,
			PriorPeriod:      previous,
			Variance:         variance,
			PercentageChange: percentageOf(variance, previous),
		})
	}

	return trends
}

// compareVariance matches each selected account against expected balances by
// account number. Accounts with no expectation produce no row.
func (s *AnalysisService) compareVariance(selected, expected []models.AccountBalance) []models.VarianceAnalysis {
	expectedByNumber := indexByNumber(expected)
	variances := []models.VarianceAnalysis{}

	for _, acc := range selected {
		exp, ok := expectedByNumber[acc.AccountNumber]
		if !ok {
			continue
		}
		actual := signedYTD(acc)
		target := signedYTD(exp)
		variance := actual.Sub(target)
		variances = append(variances, models.VarianceAnalysis{
			AccountNumber:      acc.AccountNumber,
			AccountName:        acc.AccountName,
			Actual:             actual,
			Expected:           target,
			Variance:           variance,
			PercentageVariance: percentageOf(variance, target),
		})
	}

	return variances
}

func indexByNumber(accounts []models.AccountBalance) map[string]models.AccountBalance {
	byNumber := make(map[string]models.AccountBalance, len(accounts))
	for _, acc := range accounts {
		byNumber[acc.AccountNumber] = acc
	}
	return byNumber
}

// percentageOf returns variance over the absolute base as a percentage, and
// zero when the base itself is zero.
func percentageOf(variance, base decimal.Decimal) float64 {
	if base.IsZero() {
		return 0
	}
	return variance.Div(base.Abs()).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
