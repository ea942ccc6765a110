package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
	"github.com/tartampluch/go-age/internal/ui"
	"golang.org/x/sync/errgroup"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. Settings (environment, then flags)
	// -------------------------------------------------------------------------
	settings, err := config.LoadSettings(filepath.Base(os.Args[0]), os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config.ExitCodeSuccess
		}
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	if settings.ShowVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// One-shot output goes to stdout, so logs move to stderr there.
	console := io.Writer(os.Stdout)
	if settings.OneShot() {
		console = os.Stderr
	}
	logCloser := setupLogging(settings.Debug, console)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo(settings.Mode())

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	switch settings.Mode() {
	case config.ModeOneShot:
		return runOnce(ctx, settings, engine.RealClock{}, nil, os.Stdout, os.Stderr)
	case config.ModeServe:
		err = serve(ctx, settings)
	default:
		err = runDesktop(ctx, settings)
	}

	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// runOnce prints the four result lines for -birth or -vcard.
// Rejections print the user message to stderr and exit with an error code.
// A nil fetcher selects the HTTP fetcher.
func runOnce(ctx context.Context, s *config.Settings, clock engine.Clock, fetcher engine.VCardFetcher, stdout, stderr io.Writer) int {
	log := slog.With(config.LogKeyComponent, config.CompCLI)
	input := s.Birth

	if s.VCard != "" {
		if fetcher == nil {
			fetcher = engine.NewHTTPFetcher()
		}
		importer := &engine.Importer{Fetcher: fetcher}
		b, err := importer.Import(ctx, engine.ImportSource{
			Location: s.VCard,
			User:     s.VCardUser,
			Pass:     s.VCardPass,
		})
		if err != nil {
			log.Error(config.ErrVCardParse, config.LogKeyError, err)
			fmt.Fprintln(stderr, err)
			return config.ExitCodeError
		}
		log.Info(config.MsgImportSuccess, config.LogKeyName, b.Name)
		input = b.BirthDate.String()
	}

	res, err := engine.NewCalculator(clock).Calculate(input, config.TriggerCLI)
	if err != nil {
		var vErr *engine.ValidationError
		if errors.As(err, &vErr) {
			fmt.Fprintln(stderr, vErr.Message)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return config.ExitCodeError
	}

	for _, line := range engine.Describe(res.Age).Lines() {
		fmt.Fprintln(stdout, line)
	}
	return config.ExitCodeSuccess
}

// serve runs the HTTP calculator headless until a signal arrives.
func serve(ctx context.Context, s *config.Settings) error {
	srv := server.NewAgeServer(s.Port, engine.RealClock{})
	srv.BindAddr = s.BindAddr

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		return nil
	})

	return g.Wait()
}

// runDesktop initializes the Fyne application, wires dependencies, and starts the UI loop.
func runDesktop(ctx context.Context, s *config.Settings) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	// The saved preference wins over the environment default.
	port := a.Preferences().StringWithFallback(config.PrefServerPort, s.Port)
	srv := server.NewAgeServer(port, engine.RealClock{})
	srv.BindAddr = s.BindAddr

	gui := ui.NewAgeApp(a, ctx, srv)
	gui.DefaultLanguage = s.Language

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the main window closes.
	gui.Run()

	return nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(mode string) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyMode, mode,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool, console io.Writer) io.Closer {
	writers := []io.Writer{console}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
