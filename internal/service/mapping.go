package service

import (
	"regexp"
	"strings"

	"workpaper-web/internal/models"

	"github.com/agnivade/levenshtein"
)

// Canonical trial-balance field names, in resolution order.
const (
	FieldAccountNumber = "account_number"
	FieldAccountName   = "account_name"
	FieldCurrency      = "currency"
	FieldOpeningDebit  = "opening_debit"
	FieldOpeningCredit = "opening_credit"
	FieldPeriodDebit   = "period_debit"
	FieldPeriodCredit  = "period_credit"
	FieldYTDDebit      = "ytd_debit"
	FieldYTDCredit     = "ytd_credit"
	FieldEntity        = "entity"
	FieldDepartment    = "department"
	FieldProject       = "project"
	FieldNotes         = "notes"
)

type fieldPatterns struct {
	field    string
	assign   func(*models.ColumnMapping, string)
	patterns []*regexp.Regexp
}

func compilePatterns(fragments ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(fragments))
	for i, f := range fragments {
		compiled[i] = regexp.MustCompile("(?i)" + f)
	}
	return compiled
}

// canonicalFields is the explicit, ordered matching table: fields are
// resolved top to bottom, and for each field the header list is scanned in
// order against each pattern. The first header matching any fragment is
// bound, and a bound header is unavailable to later fields.
var canonicalFields = []fieldPatterns{
	{FieldAccountNumber, func(m *models.ColumnMapping, h string) { m.AccountNumber = h },
		compilePatterns(`account.*number`, `account.*code`, `account.*id`, `acct.*no`, `acct.*num`, `account.*no\b`)},
	{FieldAccountName, func(m *models.ColumnMapping, h string) { m.AccountName = h },
		compilePatterns(`account.*name`, `account.*desc`, `description`, `acct.*name`)},
	{FieldCurrency, func(m *models.ColumnMapping, h string) { m.Currency = h },
		compilePatterns(`currency`, `curr`, `ccy`)},
	{FieldOpeningDebit, func(m *models.ColumnMapping, h string) { m.OpeningDebit = h },
		compilePatterns(`opening.*debit`, `open.*debit`, `beg.*debit`, `beginning.*debit`)},
	{FieldOpeningCredit, func(m *models.ColumnMapping, h string) { m.OpeningCredit = h },
		compilePatterns(`opening.*credit`, `open.*credit`, `beg.*credit`, `beginning.*credit`)},
	{FieldPeriodDebit, func(m *models.ColumnMapping, h string) { m.PeriodDebit = h },
		compilePatterns(`period.*debit`, `current.*debit`, `month.*debit`)},
	{FieldPeriodCredit, func(m *models.ColumnMapping, h string) { m.PeriodCredit = h },
		compilePatterns(`period.*credit`, `current.*credit`, `month.*credit`)},
	{FieldYTDDebit, func(m *models.ColumnMapping, h string) { m.YTDDebit = h },
		compilePatterns(`ytd.*debit`, `year.*debit`, `annual.*debit`)},
	{FieldYTDCredit, func(m *models.ColumnMapping, h string) { m.YTDCredit = h },
		compilePatterns(`ytd.*credit`, `year.*credit`, `annual.*credit`)},
	{FieldEntity, func(m *models.ColumnMapping, h string) { m.Entity = h },
		compilePatterns(`entity`, `company`, `subsidiary`)},
	{FieldDepartment, func(m *models.ColumnMapping, h string) { m.Department = h },
		compilePatterns(`department`, `dept`, `division`)},
	{FieldProject, func(m *models.ColumnMapping, h string) { m.Project = h },
		compilePatterns(`project`, `job`, `cost.*center`)},
	{FieldNotes, func(m *models.ColumnMapping, h string) { m.Notes = h },
		compilePatterns(`notes`, `comments`, `remarks`, `memo`)},
}

// fieldDisplayNames feed the levenshtein suggestions for unmapped fields.
var fieldDisplayNames = map[string]string{
	FieldAccountNumber: "account number",
	FieldAccountName:   "account name",
	FieldCurrency:      "currency",
	FieldOpeningDebit:  "opening debit",
	FieldOpeningCredit: "opening credit",
	FieldPeriodDebit:   "period debit",
	FieldPeriodCredit:  "period credit",
	FieldYTDDebit:      "ytd debit",
	FieldYTDCredit:     "ytd credit",
	FieldEntity:        "entity",
	FieldDepartment:    "department",
	FieldProject:       "project",
	FieldNotes:         "notes",
}

// ResolveColumnMapping maps free-form headers onto the canonical fields. The
// result is deterministic for a given header list, no header is ever bound to
// two fields, and a field no header matches is simply left unmapped.
func ResolveColumnMapping(headers []string) models.ColumnMapping {
	var mapping models.ColumnMapping
	claimed := make(map[string]bool)

	for _, fp := range canonicalFields {
		for _, header := range headers {
			if claimed[header] {
				continue
			}
			lower := strings.ToLower(header)
			matched := false
			for _, pattern := range fp.patterns {
				if pattern.MatchString(lower) {
					matched = true
					break
				}
			}
			if matched {
				fp.assign(&mapping, header)
				claimed[header] = true
				break
			}
		}
	}

	return mapping
}

// SuggestFields proposes the closest unclaimed header for each field the
// pattern table left unmapped. Suggestions are advisory only; callers decide
// whether to apply them as overrides.
func SuggestFields(headers []string, mapping models.ColumnMapping) []models.MappingSuggestion {
	claimed := make(map[string]bool)
	for _, bound := range mappedHeaders(mapping) {
		claimed[bound] = true
	}

	var suggestions []models.MappingSuggestion
	for _, fp := range canonicalFields {
		if fieldBound(mapping, fp.field) {
			continue
		}

		display := fieldDisplayNames[fp.field]
		best := ""
		bestDistance := 0
		for _, header := range headers {
			if claimed[header] {
				continue
			}
			d := levenshtein.ComputeDistance(strings.ToLower(header), display)
			if best == "" || d < bestDistance {
				best = header
				bestDistance = d
			}
		}

		// A distance beyond half the field name is noise, not a suggestion.
		if best != "" && bestDistance <= len(display)/2 {
			suggestions = append(suggestions, models.MappingSuggestion{
				Field:    fp.field,
				Header:   best,
				Distance: bestDistance,
			})
		}
	}

	return suggestions
}

func mappedHeaders(m models.ColumnMapping) []string {
	all := []string{
		m.AccountNumber, m.AccountName, m.Currency,
		m.OpeningDebit, m.OpeningCredit, m.PeriodDebit, m.PeriodCredit,
		m.YTDDebit, m.YTDCredit, m.Entity, m.Department, m.Project, m.Notes,
	}
	var bound []string
	for _, h := range all {
		if h != "" {
			bound = append(bound, h)
		}
	}
	return bound
}

func fieldBound(m models.ColumnMapping, field string) bool {
	switch field {
	case FieldAccountNumber:
		return m.AccountNumber != ""
	case FieldAccountName:
		return m.AccountName != ""
	case FieldCurrency:
		return m.Currency != ""
	case FieldOpeningDebit:
		return m.OpeningDebit != ""
	case FieldOpeningCredit:
		return m.OpeningCredit != ""
	case FieldPeriodDebit:
		return m.PeriodDebit != ""
	case FieldPeriodCredit:
		return m.PeriodCredit != ""
	case FieldYTDDebit:
		return m.YTDDebit != ""
	case FieldYTDCredit:
		return m.YTDCredit != ""
	case FieldEntity:
		return m.Entity != ""
	case FieldDepartment:
		return m.Department != ""
	case FieldProject:
		return m.Project != ""
	case FieldNotes:
		return m.Notes != ""
	}
	return false
}
