package service

import (
	"strings"

	"workpaper-web/internal/models"

	"github.com/shopspring/decimal"
)

var amountStripper = strings.NewReplacer(",", "", "$", "", "€", "", "£", "", "¥", "", " ", "")

// ParseAmount converts a formatted monetary cell to a decimal. Thousands
// separators and common currency symbols are stripped first; anything left
// that does not parse yields zero, never an error, because uploaded trial
// balances routinely carry dashes or blanks for empty amounts.
func ParseAmount(raw string) decimal.Decimal {
	cleaned := amountStripper.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ExtractAccounts projects the mapped columns of a sheet into account balance
// lines. Row order is preserved. A row whose account number cell is null or
// blank is skipped rather than failing the extraction.
func ExtractAccounts(sheet models.Sheet, mapping models.ColumnMapping) ([]models.AccountBalance, error) {
	if mapping.AccountNumber == "" {
		return nil, models.NewValidationError("account_number", "no header is mapped to the account number field")
	}
	if mapping.AccountName == "" {
		return nil, models.NewValidationError("account_name", "no header is mapped to the account name field")
	}

	index := make(map[string]int, len(sheet.Headers))
	for i, h := range sheet.Headers {
		index[h] = i
	}

	textAt := func(row []*string, header string) string {
		if header == "" {
			return ""
		}
		pos, ok := index[header]
		if !ok || pos >= len(row) || row[pos] == nil {
			return ""
		}
		return strings.TrimSpace(*row[pos])
	}
	amountAt := func(row []*string, header string) decimal.Decimal {
		return ParseAmount(textAt(row, header))
	}

	accounts := make([]models.AccountBalance, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		number := textAt(row, mapping.AccountNumber)
		if number == "" {
			continue
		}
		accounts = append(accounts, models.AccountBalance{
			AccountNumber: number,
			AccountName:   textAt(row, mapping.AccountName),
			Currency:      textAt(row, mapping.Currency),
			OpeningDebit:  amountAt(row, mapping.OpeningDebit),
			OpeningCredit: amountAt(row, mapping.OpeningCredit),
			PeriodDebit:   amountAt(row, mapping.PeriodDebit),
			PeriodCredit:  amountAt(row, mapping.PeriodCredit),
			YTDDebit:      amountAt(row, mapping.YTDDebit),
			YTDCredit:     amountAt(row, mapping.YTDCredit),
			Entity:        textAt(row, mapping.Entity),
			Department:    textAt(row, mapping.Department),
			Project:       textAt(row, mapping.Project),
			Notes:         textAt(row, mapping.Notes),
		})
	}

	return accounts, nil
}
