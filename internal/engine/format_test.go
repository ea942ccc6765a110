package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234, "1,234"},
		{8821, "8,821"},
		{46020, "46,020"},
		{1234567, "1,234,567"},
		{-5, "-5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in), "FormatNumber(%d)", tt.in)
	}
}

func TestNumberFormatter_NoGroupingAtOrBelowThreshold(t *testing.T) {
	f := NewNumberFormatter(language.French)

	assert.Equal(t, "999", f.Format(999))
	assert.Equal(t, "12", f.Format(12))
	assert.NotEqual(t, "1000", f.Format(1000), "values above 999 are grouped")
}

func TestDescribe(t *testing.T) {
	got := Describe(AgeBreakdown{Years: 24, Months: 1, Days: 24, TotalMonths: 289, TotalDays: 8821})

	assert.Equal(t, "24 Years", got.Headline)
	assert.Equal(t, "24 years, 1 months, 24 days", got.Detail)
	assert.Equal(t, "Total: 289 months", got.TotalMonths)
	assert.Equal(t, "Total: 8,821 days", got.TotalDays)
	assert.Equal(t, []string{got.Headline, got.Detail, got.TotalMonths, got.TotalDays}, got.Lines())
}
