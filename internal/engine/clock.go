package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Callers read it once per user action so that validation and the age
// arithmetic agree on the same "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today truncates the clock reading to the local calendar date.
func Today(c Clock) CalendarDate {
	return DateOf(c.Now())
}
