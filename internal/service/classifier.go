package service

import (
	"strconv"
	"strings"

	"workpaper-web/internal/models"
)

// AccountClass is the category band plus normal balance nature derived from
// an account number.
type AccountClass struct {
	Category      string
	IsDebitNature bool
}

// ClassifyAccount buckets an account number into its financial statement
// category using the standard numbering bands. It is total: any input that
// does not parse as a number in the 1000+ range falls to the other bucket
// with a credit-side nature.
func ClassifyAccount(accountNumber string) AccountClass {
	trimmed := strings.TrimSpace(accountNumber)
	code, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return AccountClass{Category: models.CategoryOther, IsDebitNature: false}
	}

	switch {
	case code >= 1000 && code < 2000:
		return AccountClass{Category: models.CategoryAssets, IsDebitNature: true}
	case code >= 2000 && code < 3000:
		return AccountClass{Category: models.CategoryLiabilities, IsDebitNature: false}
	case code >= 3000 && code < 4000:
		return AccountClass{Category: models.CategoryEquity, IsDebitNature: false}
	case code >= 4000 && code < 5000:
		return AccountClass{Category: models.CategoryRevenue, IsDebitNature: false}
	case code >= 5000:
		return AccountClass{Category: models.CategoryExpenses, IsDebitNature: true}
	default:
		return AccountClass{Category: models.CategoryOther, IsDebitNature: false}
	}
}
