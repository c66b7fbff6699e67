package service

import (
	"regexp"
	"strings"
)

// PII detection constants: sample at most piiSampleLimit non-null values, and
// flag the column when more than piiThreshold of them match a pattern.
const (
	piiSampleLimit = 50
	piiThreshold   = 0.3
)

// piiKeywords short-circuit the pattern scan: a header containing any of
// these is flagged without looking at the values.
var piiKeywords = []string{"name", "email", "phone", "id", "ssn", "social"}

var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`), // email
	regexp.MustCompile(`^\+?[1-9]\d{0,15}$`),         // phone-like digit string
	regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`),         // alphabetic name-like
	regexp.MustCompile(`^\d{10,15}$`),                // national-id-like
}

// PIIDetector flags columns that look like they hold personally identifiable
// information. The decision is binary and recomputed on every profile run; it
// is heuristic (keyword + pattern), not statistical.
type PIIDetector struct{}

func NewPIIDetector() *PIIDetector {
	return &PIIDetector{}
}

// Detect reports whether the column is sensitive, based on its header name or
// on the share of sampled values matching a PII pattern.
func (d *PIIDetector) Detect(columnName string, nonNull []string) bool {
	if len(nonNull) == 0 {
		return false
	}

	header := strings.ToLower(columnName)
	for _, keyword := range piiKeywords {
		if strings.Contains(header, keyword) {
			return true
		}
	}

	sample := nonNull
	if len(sample) > piiSampleLimit {
		sample = sample[:piiSampleLimit]
	}

	matches := 0
	for _, value := range sample {
		str := strings.TrimSpace(value)
		for _, pattern := range piiPatterns {
			if pattern.MatchString(str) {
				matches++
				break
			}
		}
	}

	return float64(matches)/float64(len(sample)) > piiThreshold
}
