package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	entryPort     *FilteredEntry
	checkRemember *widget.Check
	entryReminder *FilteredEntry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *AgeApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	itemRemember := widget.NewFormItem("", sw.checkRemember)
	itemRemember.HintText = app.GetMsg(config.TKeyHelpRemember)

	itemReminder := widget.NewFormItem(app.GetMsg(config.TKeyLblReminder), sw.entryReminder)

	form := widget.NewForm(itemLang, itemPort, itemRemember, itemReminder)

	// --- Actions ---
	saveAction := func() {
		// Only the Port field has a strict requirement that blocks saving if invalid.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(app.localize(config.TKeyLblFooter,
		map[string]any{"Version": config.Version}, config.AppName+" "+config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// newSettingsWidgets builds the inputs pre-filled from preferences.
func (app *AgeApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.currentLanguage())

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.checkRemember = widget.NewCheck(app.GetMsg(config.TKeyLblRemember), nil)
	sw.checkRemember.SetChecked(app.Preferences.Bool(config.PrefRememberBirth))

	// Empty or 0 disables the export reminder.
	sw.entryReminder = NewNumericalEntry()
	sw.entryReminder.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefReminderDays, config.DefaultReminderDay)))

	return sw
}

// validatePort accepts 1-65535 and reports localized errors.
func (app *AgeApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// saveSettings persists the form and applies what can change live.
// The server port is read at startup only.
func (app *AgeApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	langChanged := sw.langSelect.Selected != "" && sw.langSelect.Selected != app.currentLanguage()
	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	days, err := strconv.Atoi(sw.entryReminder.Text)
	if err != nil || days < 0 {
		days = 0
	}
	app.Preferences.SetInt(config.PrefReminderDays, days)

	app.Preferences.SetBool(config.PrefRememberBirth, sw.checkRemember.Checked)
	if !sw.checkRemember.Checked {
		app.forgetBirth()
	}

	if langChanged {
		app.UpdateLocalizer()
		app.RefreshMainWindow()
	}
}
