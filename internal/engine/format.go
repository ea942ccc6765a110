package engine

import (
	"strconv"

	"github.com/tartampluch/go-age/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NumberFormatter renders counts, grouping thousands only above 999.
type NumberFormatter struct {
	tag language.Tag
}

// NewNumberFormatter returns a formatter using the separators of tag.
func NewNumberFormatter(tag language.Tag) *NumberFormatter {
	return &NumberFormatter{tag: tag}
}

// Format renders n. Values up to 999 are plain digits.
func (f *NumberFormatter) Format(n int) string {
	if n > config.GroupingThreshold {
		return message.NewPrinter(f.tag).Sprintf("%d", n)
	}
	return strconv.Itoa(n)
}

var englishNumbers = NewNumberFormatter(language.AmericanEnglish)

// FormatNumber renders n with en-US thousands separators when n > 999.
func FormatNumber(n int) string {
	return englishNumbers.Format(n)
}
