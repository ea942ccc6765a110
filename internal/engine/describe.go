package engine

import (
	"fmt"

	"github.com/tartampluch/go-age/internal/config"
)

// Summary is the canonical English rendering of an AgeBreakdown.
type Summary struct {
	Headline    string `json:"headline"`
	Detail      string `json:"detail"`
	TotalMonths string `json:"total_months"`
	TotalDays   string `json:"total_days"`
}

// Describe renders the four result lines shown to the user.
func Describe(a AgeBreakdown) Summary {
	return Summary{
		Headline:    fmt.Sprintf(config.FormatHeadline, a.Years),
		Detail:      fmt.Sprintf(config.FormatDetail, a.Years, a.Months, a.Days),
		TotalMonths: fmt.Sprintf(config.FormatTotalMonths, FormatNumber(a.TotalMonths)),
		TotalDays:   fmt.Sprintf(config.FormatTotalDays, FormatNumber(a.TotalDays)),
	}
}

// Lines returns the summary in display order.
func (s Summary) Lines() []string {
	return []string{s.Headline, s.Detail, s.TotalMonths, s.TotalDays}
}
