package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-Age/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Age"
	AppID             = "com.github.tartampluch.go-age"
	KeyringService    = "com.github.tartampluch.go-age"
	KeyringBirthUser  = "birth_date"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion = "version"
	FlagDebug   = "debug"
	FlagServe   = "serve"
	FlagPort    = "port"
	FlagBind    = "bind"
	FlagLang    = "lang"
	FlagBirth   = "birth"
	FlagVCard   = "vcard"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescServe   = "Run the HTTP calculator only, without the desktop window"
	FlagDescPort    = "Port of the local HTTP calculator"
	FlagDescBind    = "Address the HTTP calculator binds to"
	FlagDescLang    = "UI language (ISO 639-1)"
	FlagDescBirth   = "Print the age for this birth date (YYYY-MM-DD) and exit"
	FlagDescVCard   = "Read the birth date from a vCard file or http(s) URL and exit"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 420
	MainWindowHeight    = 360
	SettingsWindowWidth = 480

	// Preference Keys
	PrefLanguage       = "language"
	PrefServerPort     = "server_port"
	PrefRememberBirth  = "remember_birth_date"
	PrefLastRun        = "last_run_version"
	PrefReminderDays   = "export_reminder_days"
	DefaultReminderDay = 1
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyLblBirthDate   = "lbl_birth_date"
	TKeyHelpBirthDate  = "help_birth_date" // Requires Max
	TKeyBtnCalculate   = "btn_calculate"
	TKeyBtnImport      = "btn_import"
	TKeyBtnExport      = "btn_export"
	TKeyBtnSettings    = "btn_settings"
	TKeyResHeadline    = "result_headline"     // Requires Years
	TKeyResDetail      = "result_detail"       // Requires Years, Months, Days
	TKeyResTotalMonths = "result_total_months" // Requires Total
	TKeyResTotalDays   = "result_total_days"   // Requires Total
	TKeyErrEmptyInput  = "err_empty_input"
	TKeyErrFutureDate  = "err_future_date"
	TKeyErrImport      = "err_import"
	TKeyErrExport      = "err_export"
	TKeyEvtSummary     = "event_summary"       // Requires Age
	TKeyEvtSummaryBorn = "event_summary_birth" // For age 0
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblRemember    = "lbl_remember_birth"
	TKeyHelpRemember   = "help_remember_birth"
	TKeyLblReminder    = "lbl_reminder_days"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"

	// GroupingThreshold is the largest number rendered without thousands separators.
	GroupingThreshold = 999

	// SecondsPerDay converts raw timestamp differences into whole days.
	SecondsPerDay = 24 * 60 * 60

	UIDSalt = "go-age-v1-" // Salt for deterministic UID generation
)

// ISO8601 Duration Components for Reminders
const (
	ISONegativePrefix = "-P"
	ISODay            = "D"
)

// -----------------------------------------------------------------------------
// User-Facing Validation Messages
// -----------------------------------------------------------------------------

// These strings are part of the observable output and must not change.
const (
	MsgSelectBirthDate = "Please select your birth date"
	MsgFutureBirthDate = "Birth date cannot be in the future"
)

// Canonical English rendering of an age breakdown.
const (
	FormatHeadline    = "%d Years"
	FormatDetail      = "%d years, %d months, %d days"
	FormatTotalMonths = "Total: %s months"
	FormatTotalDays   = "Total: %s days"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Age//Engine//EN"
	ICalCalName   = "Birthday"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goage"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for birth dates (form fields and vCard BDAY values).
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"

	ExportFileName = "birthday.ics"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	RouteRoot     = "/"
	RouteAPIAge   = "/api/age"
	RouteCalendar = "/calendar.ics"
	RouteMetrics  = "/metrics"
	QueryBirth    = "birth"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderCacheControl       = "Cache-Control"
	HeaderETag               = "ETag"
	HeaderAllow              = "Allow"
	HeaderXContentType       = "X-Content-Type-Options"
	HeaderUserAgent          = "User-Agent"
	HeaderIfNoneMatch        = "If-None-Match"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextHTML        = "text/html; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
	// FormatAttachment expects a file name.
	FormatAttachment = `attachment; filename="%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocationEmpty  = "import error: vCard location is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to read vCard stream"
	ErrNoBirthday     = "no contact with a full birth date found"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrSettingsEnv    = "failed to parse environment settings"
	ErrSettingsFlags  = "failed to parse command line flags"
	ErrKeyringSave    = "failed to save birth date to keyring"
	ErrKeyringLoad    = "failed to load birth date from keyring"
	ErrTemplateRender = "failed to render page template"
	ErrExportWrite    = "failed to write calendar export"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Birthday (%d)"
	FallbackSummaryBirth = "Birthday (birth)"
	FallbackName         = "Unknown"
	FallbackHelpBirth    = "YYYY-MM-DD, up to %s"

	TitleStartupError = "Startup Error"

	MsgPortBusy      = "Port %s is busy or unavailable."
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, shutting down UI"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgCalcSuccess   = "Age calculated"
	MsgCalcRejected  = "Birth date rejected"
	MsgExportSuccess = "Anniversary calendar generated"
	MsgImportSuccess = "Birth date imported from vCard"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgBirthRestored = "Remembered birth date restored"
	MsgBirthForget   = "Remembered birth date cleared"
	MsgLogWarning    = "Warning: %s at %s: %v\n"

	PlaceholderDate = "YYYY-MM-DD"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAddr      = "addr"
	LogKeyMode      = "mode"
	LogKeyValue     = "value"
	LogKeyKind      = "kind"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyToday     = "today"
	LogKeyYears     = "years"
	LogKeyTotalDays = "total_days"
	LogKeySizeBytes = "size_bytes"
	LogKeyEvents    = "events"
	LogKeyTrigger   = "trigger"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompCLI     = "cli"
	CompI18n    = "i18n"
)

// Run modes, logged at startup.
const (
	ModeDesktop = "desktop"
	ModeServe   = "serve"
	ModeOneShot = "oneshot"
)

// Calculation triggers. Every trigger funnels into the same calculation path.
const (
	TriggerButton  = "button"
	TriggerEnter   = "enter"
	TriggerHTTP    = "http"
	TriggerCLI     = "cli"
	TriggerImport  = "import"
	TriggerExport  = "export"
	TriggerRestore = "restore"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricCalculations = "goage_calculations_total"
	MetricLatency      = "goage_http_request_duration_seconds"
	MetricLabelOutcome = "outcome"
	MetricLabelRoute   = "route"
	OutcomeOK          = "ok"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
