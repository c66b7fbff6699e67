package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_KeywordHeaders(t *testing.T) {
	d := NewPIIDetector()
	values := []string{"x9", "y8", "z7"}

	for _, header := range []string{
		"Customer Name", "EMAIL", "Phone Number", "Employee ID", "ssn", "Social Security",
	} {
		assert.True(t, d.Detect(header, values), "header %q", header)
	}
}

func TestDetect_KeywordMatchIsSubstring(t *testing.T) {
	d := NewPIIDetector()
	// "Vendor" carries no keyword; "Vendor Contact Name" does.
	assert.False(t, d.Detect("Vendor", []string{"x9"}))
	assert.True(t, d.Detect("Vendor Contact Name", []string{"x9"}))
}

func TestDetect_EmailValues(t *testing.T) {
	d := NewPIIDetector()
	values := []string{"alice@example.com", "bob@example.org", "x9", "y8"}

	assert.True(t, d.Detect("Col7", values), "2 of 4 email-like values clears 30%")
}

func TestDetect_BelowThreshold(t *testing.T) {
	d := NewPIIDetector()
	values := []string{"alice@example.com", "x9", "y8", "z7", "w6", "v5", "u4", "t3", "s2", "r1"}

	assert.False(t, d.Detect("Col7", values), "1 of 10 matches is under the 30% bar")
}

func TestDetect_NameLikeValues(t *testing.T) {
	d := NewPIIDetector()
	values := []string{"John Smith", "Jane Doe", "Bob Lee"}

	assert.True(t, d.Detect("Col3", values))
}

func TestDetect_NationalIDLikeValues(t *testing.T) {
	d := NewPIIDetector()
	values := []string{"1234567890", "9876543210123"}

	assert.True(t, d.Detect("Col5", values))
}

func TestDetect_EmptyColumn(t *testing.T) {
	d := NewPIIDetector()

	assert.False(t, d.Detect("Customer Name", nil), "no values means no detection, keyword or not")
}

func TestDetect_SampleWindow(t *testing.T) {
	d := NewPIIDetector()

	// First 50 values are inert, so the emails beyond the window are
	// never inspected.
	values := make([]string, 0, 60)
	for i := 0; i < 50; i++ {
		values = append(values, fmt.Sprintf("x%d!", i))
	}
	for i := 0; i < 10; i++ {
		values = append(values, fmt.Sprintf("user%d@example.com", i))
	}

	assert.False(t, d.Detect("Col2", values))
}
