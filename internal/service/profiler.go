package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"workpaper-web/internal/models"
)

// Profiling constants. Changing the thresholds changes detection sensitivity
// for every previously imported dataset on reprofile.
const (
	typeSampleLimit  = 100
	typeThreshold    = 0.7
	sampleValueLimit = 5
)

var (
	currencySymbolPattern = regexp.MustCompile(`^\$?\d+\.?\d*$`)
	currencyCodePattern   = regexp.MustCompile(`(?i)^\d+\.?\d*\s?(usd|eur|gbp)$`)
	booleanPattern        = regexp.MustCompile(`(?i)^(true|false|yes|no|1|0)$`)
)

// dateFormats accepted by the profiler's date detector, most common first.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"01-02-06",
	"01/02/06",
	"02-01-2006",
	"02/01/2006",
	"Jan 02, 2006",
	"02 Jan 2006",
	"2006-01-02 15:04:05",
	"01/02/2006 3:04:05 PM",
}

// ProfilerService computes per-column metadata for a sheet. Profiling is a
// single-pass, deterministic computation: the same sheet always produces the
// same metadata, and the inferred type does not depend on row order.
type ProfilerService struct {
	pii *PIIDetector
}

func NewProfilerService() *ProfilerService {
	return &ProfilerService{pii: NewPIIDetector()}
}

// ProfileColumns profiles every column of the sheet.
func (s *ProfilerService) ProfileColumns(sheet models.Sheet) []models.ColumnMetadata {
	columns := make([]models.ColumnMetadata, len(sheet.Headers))
	for i, header := range sheet.Headers {
		columns[i] = s.analyzeColumn(sheet, i, header)
	}
	return columns
}

func (s *ProfilerService) analyzeColumn(sheet models.Sheet, index int, name string) models.ColumnMetadata {
	totalRows := len(sheet.Rows)

	var nonNull []string
	seen := make(map[string]bool)
	var samples []string

	for _, row := range sheet.Rows {
		value := cellValue(row, index)
		if value == "" {
			continue
		}
		nonNull = append(nonNull, value)
		if !seen[value] {
			seen[value] = true
			if len(samples) < sampleValueLimit {
				samples = append(samples, value)
			}
		}
	}

	meta := models.ColumnMetadata{
		Position:     index,
		Name:         name,
		DataType:     models.DataTypeText,
		NullPercent:  100,
		SampleValues: samples,
	}
	if samples == nil {
		meta.SampleValues = []string{}
	}

	if totalRows > 0 {
		meta.NullPercent = float64(totalRows-len(nonNull)) / float64(totalRows) * 100
	}
	meta.UniqueCount = len(seen)

	if len(nonNull) == 0 {
		meta.NullPercent = 100
		return meta
	}

	meta.DataType = detectDataType(nonNull)
	meta.IsPII = s.pii.Detect(name, nonNull)
	meta.MinValue, meta.MaxValue = columnExtremes(meta.DataType, nonNull)

	return meta
}

// detectDataType classifies up to the first typeSampleLimit non-null values.
// Each value is counted once, against the first detector it matches, in the
// precedence order currency, numeric, date, boolean. The first detector whose
// tally exceeds typeThreshold of the sampled count wins; otherwise text.
func detectDataType(nonNull []string) string {
	sample := nonNull
	if len(sample) > typeSampleLimit {
		sample = sample[:typeSampleLimit]
	}

	var currencyCount, numericCount, dateCount, booleanCount int
	for _, value := range sample {
		str := strings.TrimSpace(value)
		switch {
		case currencySymbolPattern.MatchString(str) || currencyCodePattern.MatchString(str):
			currencyCount++
		case isNumeric(str):
			numericCount++
		case parseColumnDate(str) != nil:
			dateCount++
		case booleanPattern.MatchString(str):
			booleanCount++
		}
	}

	total := float64(len(sample))
	switch {
	case float64(currencyCount)/total > typeThreshold:
		return models.DataTypeCurrency
	case float64(numericCount)/total > typeThreshold:
		return models.DataTypeNumeric
	case float64(dateCount)/total > typeThreshold:
		return models.DataTypeDate
	case float64(booleanCount)/total > typeThreshold:
		return models.DataTypeBoolean
	default:
		return models.DataTypeText
	}
}

// columnExtremes computes min/max over every parseable value in the full
// column. Unparseable values are excluded without affecting the column type.
func columnExtremes(dataType string, nonNull []string) (*string, *string) {
	switch dataType {
	case models.DataTypeNumeric, models.DataTypeCurrency:
		var minVal, maxVal float64
		found := false
		for _, value := range nonNull {
			str := strings.TrimSpace(value)
			if dataType == models.DataTypeCurrency {
				str = stripCurrencyAdornments(str)
			}
			n, err := strconv.ParseFloat(str, 64)
			if err != nil {
				continue
			}
			if !found || n < minVal {
				minVal = n
			}
			if !found || n > maxVal {
				maxVal = n
			}
			found = true
		}
		if !found {
			return nil, nil
		}
		minStr := strconv.FormatFloat(minVal, 'f', -1, 64)
		maxStr := strconv.FormatFloat(maxVal, 'f', -1, 64)
		return &minStr, &maxStr

	case models.DataTypeDate:
		var minDate, maxDate time.Time
		found := false
		for _, value := range nonNull {
			t := parseColumnDate(strings.TrimSpace(value))
			if t == nil {
				continue
			}
			if !found || t.Before(minDate) {
				minDate = *t
			}
			if !found || t.After(maxDate) {
				maxDate = *t
			}
			found = true
		}
		if !found {
			return nil, nil
		}
		minStr := minDate.Format("2006-01-02")
		maxStr := maxDate.Format("2006-01-02")
		return &minStr, &maxStr
	}

	return nil, nil
}

// isNumeric reports whether the string parses as a finite number.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	// ParseFloat accepts "Inf" and "NaN" spellings.
	return n == n && n < 1e308 && n > -1e308
}

func parseColumnDate(s string) *time.Time {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}

// stripCurrencyAdornments removes a leading $ and a trailing 3-letter
// currency code so currency cells can feed the numeric extremes.
func stripCurrencyAdornments(s string) string {
	s = strings.TrimPrefix(s, "$")
	if m := currencyCodePattern.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(strings.TrimSuffix(s, m[1]))
	}
	return strings.TrimSpace(s)
}

// cellValue returns the cell at index as a string, "" for null or missing.
func cellValue(row []*string, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	return *row[index]
}
