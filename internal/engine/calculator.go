package engine

import (
	"errors"
	"log/slog"

	"github.com/tartampluch/go-age/internal/config"
)

// Result is the outcome of one successful calculation.
type Result struct {
	Birth CalendarDate
	Today CalendarDate
	Age   AgeBreakdown
}

// Calculator is the single entry point shared by every trigger
// (button, Enter key, HTTP request, command line).
type Calculator struct {
	Clock Clock
}

// NewCalculator creates a Calculator reading the given clock.
func NewCalculator(c Clock) *Calculator {
	if c == nil {
		c = RealClock{}
	}
	return &Calculator{Clock: c}
}

// Calculate validates input and computes the age.
// The clock is read exactly once. Rejections are *ValidationError values.
func (c *Calculator) Calculate(input, trigger string) (Result, error) {
	return c.CalculateOn(Today(c.Clock), input, trigger)
}

// CalculateOn is Calculate against a day the caller already read,
// for callers that need the same date elsewhere in one request.
func (c *Calculator) CalculateOn(today CalendarDate, input, trigger string) (Result, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyTrigger, trigger,
	)

	birth, err := Validate(input, today)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			log.Debug(config.MsgCalcRejected, config.LogKeyKind, vErr.Kind.String())
		}
		return Result{}, err
	}

	age := CalculateAge(birth, today)
	log.Debug(config.MsgCalcSuccess,
		config.LogKeyToday, today.String(),
		config.LogKeyYears, age.Years,
		config.LogKeyTotalDays, age.TotalDays,
	)

	return Result{Birth: birth, Today: today, Age: age}, nil
}
