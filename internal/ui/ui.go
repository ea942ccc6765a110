package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
)

// AgeApp encapsulates the UI state, preferences, and background services.
type AgeApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server *server.AgeServer
	Clock  engine.Clock // Injected clock for testability (e.g. mocking time travel)

	SupportedLanguages []string
	DefaultLanguage    string

	settingsWindow fyne.Window

	birthEntry  *DateEntry
	headline    *widget.Label
	detail      *widget.Label
	totalMonths *widget.Label
	totalDays   *widget.Label
	errorLabel  *widget.Label

	// Last rendered outcome, replayed after a language switch.
	lastAge *engine.AgeBreakdown
	lastErr error
}

// NewAgeApp constructs the application and wires dependencies.
func NewAgeApp(a fyne.App, ctx context.Context, srv *server.AgeServer) *AgeApp {
	return &AgeApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Clock:              engine.RealClock{}, // Default to real clock in production
		SupportedLanguages: config.SupportedLanguages,
		DefaultLanguage:    config.DefaultLanguage,
	}
}

// Run launches the local server and the main UI loop.
func (app *AgeApp) Run() {
	app.SetupI18n()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	w := app.buildMainWindow()
	app.restoreBirth()
	w.ShowAndRun()
}

func (app *AgeApp) calculator() *engine.Calculator {
	return engine.NewCalculator(app.Clock)
}

// buildMainWindow creates the calculator window. The entry maximum is
// clamped to today once, at build time.
func (app *AgeApp) buildMainWindow() fyne.Window {
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	app.birthEntry = NewDateEntry(engine.Today(app.Clock))
	app.birthEntry.OnSubmitted = func(string) {
		app.handleCalculate(config.TriggerEnter)
	}

	app.headline = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	app.detail = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	app.totalMonths = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	app.totalDays = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	app.errorLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	app.errorLabel.Importance = widget.DangerImportance
	app.errorLabel.Hide()

	w.SetContent(app.buildContent())
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
	return w
}

// buildContent lays out the main window with the current language.
func (app *AgeApp) buildContent() fyne.CanvasObject {
	itemBirth := widget.NewFormItem(app.GetMsg(config.TKeyLblBirthDate), app.birthEntry)
	itemBirth.HintText = app.localize(config.TKeyHelpBirthDate,
		map[string]any{"Max": app.birthEntry.Max.String()},
		fmt.Sprintf(config.FallbackHelpBirth, app.birthEntry.Max.String()))

	btnCalc := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCalculate), theme.ConfirmIcon(), func() {
		app.handleCalculate(config.TriggerButton)
	})
	btnCalc.Importance = widget.HighImportance

	btnImport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.FolderOpenIcon(), app.showImportDialog)
	btnExport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), app.showExportDialog)
	btnSettings := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	return container.NewPadded(container.NewVBox(
		widget.NewForm(itemBirth),
		btnCalc,
		widget.NewSeparator(),
		app.headline,
		app.detail,
		app.totalMonths,
		app.totalDays,
		app.errorLabel,
		widget.NewSeparator(),
		container.NewGridWithColumns(config.LayoutColumnsTriple, btnImport, btnExport, btnSettings),
	))
}

// RefreshMainWindow re-applies translations after a language change.
func (app *AgeApp) RefreshMainWindow() {
	if app.Window == nil {
		return
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildContent())

	switch {
	case app.lastAge != nil:
		app.renderResult(*app.lastAge)
	case app.lastErr != nil:
		app.renderError(app.lastErr)
	}
}

// handleCalculate is the single path behind the button and the Enter key.
func (app *AgeApp) handleCalculate(trigger string) {
	res, err := app.calculator().Calculate(app.birthEntry.Text, trigger)
	if err != nil {
		app.renderError(err)
		return
	}

	app.renderResult(res.Age)
	app.rememberBirth(res.Birth)
}

// renderResult replaces any previous output with the breakdown.
func (app *AgeApp) renderResult(age engine.AgeBreakdown) {
	app.lastAge, app.lastErr = &age, nil

	s := app.describe(age)
	app.headline.SetText(s.Headline)
	app.detail.SetText(s.Detail)
	app.totalMonths.SetText(s.TotalMonths)
	app.totalDays.SetText(s.TotalDays)

	app.errorLabel.SetText("")
	app.errorLabel.Hide()
}

// renderError clears the result and shows a single-line message.
func (app *AgeApp) renderError(err error) {
	app.lastAge, app.lastErr = nil, err

	for _, l := range []*widget.Label{app.headline, app.detail, app.totalMonths, app.totalDays} {
		l.SetText("")
	}
	app.errorLabel.SetText(app.errorMessage(err))
	app.errorLabel.Show()
}

// describe is the localized counterpart of engine.Describe.
func (app *AgeApp) describe(a engine.AgeBreakdown) engine.Summary {
	fallback := engine.Describe(a)
	numbers := engine.NewNumberFormatter(app.languageTag())

	return engine.Summary{
		Headline: app.localize(config.TKeyResHeadline,
			map[string]any{"Years": a.Years}, fallback.Headline),
		Detail: app.localize(config.TKeyResDetail,
			map[string]any{"Years": a.Years, "Months": a.Months, "Days": a.Days}, fallback.Detail),
		TotalMonths: app.localize(config.TKeyResTotalMonths,
			map[string]any{"Total": numbers.Format(a.TotalMonths)}, fallback.TotalMonths),
		TotalDays: app.localize(config.TKeyResTotalDays,
			map[string]any{"Total": numbers.Format(a.TotalDays)}, fallback.TotalDays),
	}
}

func (app *AgeApp) errorMessage(err error) string {
	var vErr *engine.ValidationError
	if !errors.As(err, &vErr) {
		return err.Error()
	}
	switch vErr.Kind {
	case engine.FutureDate:
		return app.localize(config.TKeyErrFutureDate, nil, vErr.Message)
	default:
		return app.localize(config.TKeyErrEmptyInput, nil, vErr.Message)
	}
}

// -----------------------------------------------------------------------------
// vCard import
// -----------------------------------------------------------------------------

func (app *AgeApp) showImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if r == nil {
			return // cancelled
		}
		defer func() { _ = r.Close() }()

		if err := app.importFrom(r); err != nil {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrImport)), app.Window)
		}
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// importFrom fills the entry with the first usable BDAY and calculates.
func (app *AgeApp) importFrom(r io.Reader) error {
	b, err := engine.ReadBirthday(app.Ctx, r)
	if err != nil {
		slog.Warn(config.ErrVCardParse,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return err
	}

	slog.Info(config.MsgImportSuccess,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyName, b.Name)

	app.birthEntry.SetText(b.BirthDate.String())
	app.handleCalculate(config.TriggerImport)
	return nil
}

// -----------------------------------------------------------------------------
// Calendar export
// -----------------------------------------------------------------------------

func (app *AgeApp) showExportDialog() {
	res, err := app.calculator().Calculate(app.birthEntry.Text, config.TriggerExport)
	if err != nil {
		app.renderError(err)
		return
	}

	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if wc == nil {
			return // cancelled
		}
		defer func() { _ = wc.Close() }()

		if err := app.exportCalendar(wc, res.Birth); err != nil {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrExport)), app.Window)
		}
	}, app.Window)
	d.SetFileName(config.ExportFileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	d.Show()
}

// exportCalendar writes the localized anniversary calendar of birth to w.
func (app *AgeApp) exportCalendar(w io.Writer, birth engine.CalendarDate) error {
	gen := &engine.AnniversaryGenerator{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}

	days := app.Preferences.IntWithFallback(config.PrefReminderDays, config.DefaultReminderDay)
	data, err := gen.Generate(birth, engine.ReminderDaysBefore(days))
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		slog.Error(config.ErrExportWrite,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}
	return nil
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *AgeApp) buildSummaryFormatter() func(age int) string {
	return func(age int) string {
		// Age 0 is the birth day itself.
		if age == 0 {
			return app.localize(config.TKeyEvtSummaryBorn, nil, config.FallbackSummaryBirth)
		}
		return app.localize(config.TKeyEvtSummary,
			map[string]any{"Age": age}, fmt.Sprintf(config.FallbackSummary, age))
	}
}
