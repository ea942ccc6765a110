package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// AgeBreakdown is the elapsed time between a birth date and a reference date.
// Years*12+Months always equals TotalMonths. TotalDays is derived separately
// from the raw day count and is not reconciled with the other fields.
type AgeBreakdown struct {
	Years       int `json:"years"`
	Months      int `json:"months"`
	Days        int `json:"days"`
	TotalMonths int `json:"total_months"`
	TotalDays   int `json:"total_days"`
}

// CalculateAge computes the breakdown of the time elapsed from birth to now.
//
// The caller guarantees birth <= now (see Validate); the result is
// unspecified otherwise. Days are borrowed from the month preceding now's
// month, then months from years, in that order.
func CalculateAge(birth, now CalendarDate) AgeBreakdown {
	years := now.Year - birth.Year
	months := int(now.Month) - int(birth.Month)
	days := now.Day - birth.Day

	if days < 0 {
		months--
		days += DaysIn(now.Year, now.Month-1)
	}

	if months < 0 {
		years--
		months += 12
	}

	return AgeBreakdown{
		Years:       years,
		Months:      months,
		Days:        days,
		TotalMonths: years*12 + months,
		TotalDays:   totalDays(birth, now),
	}
}

// totalDays floors the difference between the two midnights to whole days.
// Unix seconds are used because time.Duration saturates after ~292 years.
func totalDays(birth, now CalendarDate) int {
	diff := now.Time(time.UTC).Unix() - birth.Time(time.UTC).Unix()
	q := diff / config.SecondsPerDay
	if diff%config.SecondsPerDay != 0 && diff < 0 {
		q--
	}
	return int(q)
}
