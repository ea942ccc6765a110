package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// ErrDateFormat is returned when a string is not a complete calendar date.
var ErrDateFormat = errors.New(config.ErrDateParse)

// CalendarDate is a civil date in the proleptic Gregorian calendar.
// It carries no time of day and no time zone.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a CalendarDate without normalizing out-of-range fields.
func NewDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Year: year, Month: month, Day: day}
}

// DateOf truncates t to the calendar date observed in t's own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// Time returns midnight of the date in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on calendar order.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d.Compare(o) == 0 }

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// AddDays returns the date n days later (or earlier for negative n).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// String formats the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return d.Time(time.UTC).Format(config.DateFormatFullDash)
}

// DaysIn returns the number of days in the given month.
// Month 0 is December of the previous year, as time.Date normalizes it.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDate reads a complete calendar date.
// Timestamps keep the civil date written in them, whatever their offset.
func ParseDate(value string) (CalendarDate, error) {
	value = strings.TrimSpace(value)

	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}

	return CalendarDate{}, fmt.Errorf("%w: %q", ErrDateFormat, value)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
