package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
)

func TestValidate_EmptyInput(t *testing.T) {
	today := NewDate(2025, time.June, 15)

	for _, input := range []string{"", "   ", "\t\n", "garbage", "2025-02-30"} {
		t.Run(input, func(t *testing.T) {
			_, err := Validate(input, today)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEmptyInput)
			assert.Equal(t, "Please select your birth date", err.Error())
		})
	}
}

func TestValidate_FutureDate(t *testing.T) {
	today := NewDate(2025, time.June, 15)

	_, err := Validate(today.AddDays(1).String(), today)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFutureDate)
	assert.Equal(t, "Birth date cannot be in the future", err.Error())

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, FutureDate, vErr.Kind)
	assert.Equal(t, "future_date", vErr.Kind.String())
}

func TestValidate_Accepts(t *testing.T) {
	today := NewDate(2025, time.June, 15)

	tests := []struct {
		input string
		want  CalendarDate
	}{
		{"2025-06-15", today}, // born today
		{"2025-06-14", NewDate(2025, time.June, 14)},
		{"1900-01-01", NewDate(1900, time.January, 1)},
		{"20000229", NewDate(2000, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Validate(tt.input, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestValidate_PastDatesAlwaysValid sweeps a range of dates up to today.
func TestValidate_PastDatesAlwaysValid(t *testing.T) {
	today := NewDate(2024, time.March, 10)
	for d := NewDate(2023, time.January, 1); !d.After(today); d = d.AddDays(1) {
		_, err := Validate(d.String(), today)
		require.NoError(t, err, d.String())
	}
	for d := today.AddDays(1); d.Before(NewDate(2025, time.January, 1)); d = d.AddDays(1) {
		_, err := Validate(d.String(), today)
		require.ErrorIs(t, err, ErrFutureDate, d.String())
	}
}

func TestValidationKind_String(t *testing.T) {
	assert.Equal(t, "empty_input", EmptyInput.String())
	assert.Equal(t, "future_date", FutureDate.String())
	assert.Equal(t, "unknown", ValidationKind(0).String())
}

func TestValidate_RejectionsAreIndependent(t *testing.T) {
	today := NewDate(2024, time.March, 10)

	_, first := Validate("", today)
	var vErr *ValidationError
	require.True(t, errors.As(first, &vErr))
	vErr.Message = "changed by caller"

	_, second := Validate("", today)
	assert.Equal(t, config.MsgSelectBirthDate, second.Error())
	assert.ErrorIs(t, second, ErrEmptyInput)
	assert.NotErrorIs(t, second, ErrFutureDate)

	_, future := Validate("2024-03-11", today)
	assert.Equal(t, config.MsgFutureBirthDate, future.Error())
	assert.ErrorIs(t, future, ErrFutureDate)
}

func TestValidationError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ValidationError{Kind: FutureDate, Message: "other text"})
	assert.ErrorIs(t, err, ErrFutureDate)
	assert.NotErrorIs(t, err, ErrEmptyInput)
	assert.NotErrorIs(t, err, errors.New(config.MsgFutureBirthDate))
}
