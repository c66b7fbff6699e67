package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"workpaper-web/internal/models"
)

func TestClassifyAccount_Bands(t *testing.T) {
	tests := []struct {
		number   string
		category string
		debit    bool
	}{
		{"1000", models.CategoryAssets, true},
		{"1999", models.CategoryAssets, true},
		{"2000", models.CategoryLiabilities, false},
		{"2999", models.CategoryLiabilities, false},
		{"3000", models.CategoryEquity, false},
		{"3999", models.CategoryEquity, false},
		{"4000", models.CategoryRevenue, false},
		{"4999", models.CategoryRevenue, false},
		{"5000", models.CategoryExpenses, true},
		{"9999", models.CategoryExpenses, true},
		{"73500", models.CategoryExpenses, true},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			class := ClassifyAccount(tt.number)
			assert.Equal(t, tt.category, class.Category)
			assert.Equal(t, tt.debit, class.IsDebitNature)
		})
	}
}

func TestClassifyAccount_DegradesToOther(t *testing.T) {
	for _, number := range []string{"", "abc", "CASH", "999", "0", "-100", "12.5"} {
		class := ClassifyAccount(number)
		assert.Equal(t, models.CategoryOther, class.Category, "input %q", number)
		assert.False(t, class.IsDebitNature, "input %q", number)
	}
}

func TestClassifyAccount_TrimsWhitespace(t *testing.T) {
	class := ClassifyAccount("  1010  ")
	assert.Equal(t, models.CategoryAssets, class.Category)
	assert.True(t, class.IsDebitNature)
}

func TestClassifyAccount_Idempotent(t *testing.T) {
	first := ClassifyAccount("4100")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ClassifyAccount("4100"))
	}
}
