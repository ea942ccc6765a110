package ui

import (
	"errors"
	"log/slog"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/zalando/go-keyring"
)

// The birth date is personal data: it lives in the OS keyring, never in
// the plain-text preferences file.

// rememberBirth stores d when the user opted in.
func (app *AgeApp) rememberBirth(d engine.CalendarDate) {
	if !app.Preferences.Bool(config.PrefRememberBirth) {
		return
	}
	if err := keyring.Set(config.KeyringService, config.KeyringBirthUser, d.String()); err != nil {
		slog.Error(config.ErrKeyringSave,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// restoreBirth pre-fills the entry and renders the age for a remembered date.
func (app *AgeApp) restoreBirth() {
	if !app.Preferences.Bool(config.PrefRememberBirth) || app.birthEntry == nil {
		return
	}

	value, err := keyring.Get(config.KeyringService, config.KeyringBirthUser)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			slog.Warn(config.ErrKeyringLoad,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
		}
		return
	}

	if _, err := engine.ParseDate(value); err != nil {
		slog.Warn(config.ErrKeyringLoad,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}

	slog.Debug(config.MsgBirthRestored, config.LogKeyComponent, config.CompUI)
	app.birthEntry.SetText(value)
	app.handleCalculate(config.TriggerRestore)
}

// forgetBirth removes any remembered date.
func (app *AgeApp) forgetBirth() {
	err := keyring.Delete(config.KeyringService, config.KeyringBirthUser)
	switch {
	case err == nil:
		slog.Info(config.MsgBirthForget, config.LogKeyComponent, config.CompUI)
	case !errors.Is(err, keyring.ErrNotFound):
		slog.Error(config.ErrKeyringSave,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}
