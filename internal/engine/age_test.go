package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCalculateAge pins fixtures derived by running the borrow algorithm by hand.
func TestCalculateAge(t *testing.T) {
	tests := []struct {
		name  string
		birth CalendarDate
		now   CalendarDate
		want  AgeBreakdown
	}{
		{
			name:  "Borrow from leap February",
			birth: NewDate(2000, time.January, 15),
			now:   NewDate(2024, time.March, 10),
			want:  AgeBreakdown{Years: 24, Months: 1, Days: 24, TotalMonths: 289, TotalDays: 8821},
		},
		{
			name:  "Borrow from May",
			birth: NewDate(1990, time.May, 20),
			now:   NewDate(2025, time.June, 15),
			want:  AgeBreakdown{Years: 35, Months: 0, Days: 26, TotalMonths: 420, TotalDays: 12810},
		},
		{
			name:  "Birthday today",
			birth: NewDate(1990, time.June, 15),
			now:   NewDate(2025, time.June, 15),
			want:  AgeBreakdown{Years: 35, Months: 0, Days: 0, TotalMonths: 420, TotalDays: 12784},
		},
		{
			name:  "January borrows from previous December",
			birth: NewDate(1985, time.December, 25),
			now:   NewDate(2025, time.January, 5),
			want:  AgeBreakdown{Years: 39, Months: 0, Days: 11, TotalMonths: 468, TotalDays: 14256},
		},
		{
			name:  "Leapling in a common year",
			birth: NewDate(2000, time.February, 29),
			now:   NewDate(2025, time.February, 28),
			want:  AgeBreakdown{Years: 24, Months: 11, Days: 30, TotalMonths: 299, TotalDays: 9131},
		},
		{
			name:  "Leap day to March first",
			birth: NewDate(2024, time.February, 29),
			now:   NewDate(2024, time.March, 1),
			want:  AgeBreakdown{Years: 0, Months: 0, Days: 1, TotalMonths: 0, TotalDays: 1},
		},
		{
			name:  "Long span",
			birth: NewDate(1900, time.January, 1),
			now:   NewDate(2025, time.December, 31),
			want:  AgeBreakdown{Years: 125, Months: 11, Days: 30, TotalMonths: 1511, TotalDays: 46020},
		},
		{
			name:  "Beyond time.Duration range",
			birth: NewDate(1700, time.March, 1),
			now:   NewDate(2024, time.March, 1),
			want:  AgeBreakdown{Years: 324, Months: 0, Days: 0, TotalMonths: 3888, TotalDays: 118339},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateAge(tt.birth, tt.now))
		})
	}
}

// TestCalculateAge_SingleBorrowFromPreviousMonth documents that only one
// borrow is taken, from the month before "now". When that month is shorter
// than the deficit, Days stays negative.
func TestCalculateAge_SingleBorrowFromPreviousMonth(t *testing.T) {
	got := CalculateAge(NewDate(2023, time.January, 31), NewDate(2023, time.March, 1))

	assert.Equal(t, AgeBreakdown{Years: 0, Months: 1, Days: -2, TotalMonths: 1, TotalDays: 29}, got)
}

func TestCalculateAge_SelfIsZero(t *testing.T) {
	for _, d := range []CalendarDate{
		NewDate(2000, time.January, 1),
		NewDate(2024, time.February, 29),
		NewDate(1999, time.December, 31),
	} {
		assert.Equal(t, AgeBreakdown{}, CalculateAge(d, d), d.String())
	}
}

// TestCalculateAge_Properties walks "now" forward day by day for a handful of
// birth dates and checks the invariants that must hold on every step.
func TestCalculateAge_Properties(t *testing.T) {
	births := []CalendarDate{
		NewDate(2000, time.January, 15),
		NewDate(2000, time.February, 29),
		NewDate(1999, time.March, 30),
		NewDate(2001, time.December, 31),
	}

	for _, birth := range births {
		t.Run(birth.String(), func(t *testing.T) {
			prev := CalculateAge(birth, birth)
			end := NewDate(birth.Year+3, birth.Month, 1)

			for now := birth.AddDays(1); now.Before(end); now = now.AddDays(1) {
				got := CalculateAge(birth, now)

				assert.Equal(t, got.Years*12+got.Months, got.TotalMonths, now.String())
				assert.GreaterOrEqual(t, got.Years, 0, now.String())
				assert.GreaterOrEqual(t, got.Months, 0, now.String())
				assert.LessOrEqual(t, got.Months, 11, now.String())
				assert.GreaterOrEqual(t, got.TotalMonths, 0, now.String())
				assert.Equal(t, prev.TotalDays+1, got.TotalDays, "totalDays must advance one per day at %s", now)

				prev = got
			}
		})
	}
}

func TestCalculateAge_TotalDaysIndependentOfBreakdown(t *testing.T) {
	// Same breakdown (1 month), different day counts depending on the month crossed.
	feb := CalculateAge(NewDate(2023, time.February, 1), NewDate(2023, time.March, 1))
	jul := CalculateAge(NewDate(2023, time.July, 1), NewDate(2023, time.August, 1))

	assert.Equal(t, feb.TotalMonths, jul.TotalMonths)
	assert.Equal(t, 28, feb.TotalDays)
	assert.Equal(t, 31, jul.TotalDays)
}
