package ui

import (
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// FilteredEntry is an Entry widget that drops typed runes its filter rejects.
// It embeds widget.Entry to inherit all standard behavior.
type FilteredEntry struct {
	widget.Entry

	accept   func(r rune) bool
	keyboard mobile.KeyboardType
}

// NewNumericalEntry creates an entry accepting digits only.
func NewNumericalEntry() *FilteredEntry {
	entry := &FilteredEntry{accept: isDigit, keyboard: mobile.NumberKeyboard}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune intercepts text input events.
// Shortcuts like Ctrl+V (Paste) bypass it, so non-matching data can still be
// pasted. The Validator handles that case.
func (e *FilteredEntry) TypedRune(r rune) {
	if e.accept == nil || e.accept(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard overrides the default keyboard type.
// This ensures that on mobile devices, a numeric keypad is shown.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	return e.keyboard
}

// DateEntry is the birth date input. It accepts YYYY-MM-DD text and flags
// dates after Max, which is clamped to today when the window is built.
type DateEntry struct {
	FilteredEntry

	Max engine.CalendarDate
}

// NewDateEntry creates a date entry whose selectable maximum is max.
func NewDateEntry(max engine.CalendarDate) *DateEntry {
	entry := &DateEntry{Max: max}
	entry.accept = isDateRune
	entry.keyboard = mobile.NumberKeyboard
	entry.PlaceHolder = config.PlaceholderDate
	entry.Validator = entry.validate
	entry.ExtendBaseWidget(entry)
	return entry
}

// validate only drives the entry's visual hint; an empty field is not
// flagged while the user has not typed anything yet.
func (e *DateEntry) validate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := engine.Validate(s, e.Max)
	return err
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDateRune(r rune) bool {
	return isDigit(r) || r == '-'
}
