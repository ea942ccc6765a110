package engine

import (
	"strings"

	"github.com/tartampluch/go-age/internal/config"
)

// ValidationKind classifies why a birth date was rejected.
type ValidationKind int

const (
	// EmptyInput covers missing, blank and unparsable input.
	EmptyInput ValidationKind = iota + 1
	// FutureDate is a birth date strictly after today.
	FutureDate
)

// String returns the stable identifier used in logs, metrics and JSON.
func (k ValidationKind) String() string {
	switch k {
	case EmptyInput:
		return "empty_input"
	case FutureDate:
		return "future_date"
	default:
		return "unknown"
	}
}

// ValidationError is the user-facing rejection of a birth date.
// Message is shown verbatim; it never contains technical detail.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any *ValidationError of the same Kind, so errors.Is works
// against the sentinels regardless of the message carried.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Sentinel rejections for errors.Is. Validate never returns these values
// themselves; each rejection is a fresh error built from the config messages.
var (
	ErrEmptyInput error = &ValidationError{Kind: EmptyInput, Message: config.MsgSelectBirthDate}
	ErrFutureDate error = &ValidationError{Kind: FutureDate, Message: config.MsgFutureBirthDate}
)

func rejection(kind ValidationKind) *ValidationError {
	msg := config.MsgSelectBirthDate
	if kind == FutureDate {
		msg = config.MsgFutureBirthDate
	}
	return &ValidationError{Kind: kind, Message: msg}
}

// Validate checks a user-supplied birth date against today.
// On success it returns the parsed date; otherwise the error is a
// *ValidationError matching ErrEmptyInput or ErrFutureDate.
// A birth date equal to today is valid.
func Validate(input string, today CalendarDate) (CalendarDate, error) {
	if strings.TrimSpace(input) == "" {
		return CalendarDate{}, rejection(EmptyInput)
	}

	birth, err := ParseDate(input)
	if err != nil {
		return CalendarDate{}, rejection(EmptyInput)
	}

	if birth.After(today) {
		return CalendarDate{}, rejection(FutureDate)
	}

	return birth, nil
}
