package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// AgeServer serves the age calculator over HTTP on the local machine.
type AgeServer struct {
	Port     string
	BindAddr string

	calc     *engine.Calculator
	calendar *engine.AnniversaryGenerator
	metrics  *Metrics
}

// NewAgeServer creates a server whose calculations read the given clock.
func NewAgeServer(port string, clock engine.Clock) *AgeServer {
	calc := engine.NewCalculator(clock)
	return &AgeServer{
		Port:     port,
		BindAddr: config.LocalhostBindAddr,
		calc:     calc,
		calendar: &engine.AnniversaryGenerator{Clock: calc.Clock},
		metrics:  NewMetrics(),
	}
}

// Metrics exposes the server's collectors, mainly for tests.
func (s *AgeServer) Metrics() *Metrics {
	return s.metrics
}

// Addr returns the listen address.
func (s *AgeServer) Addr() string {
	return net.JoinHostPort(s.BindAddr, s.Port)
}

// URL returns the address a browser can open.
func (s *AgeServer) URL() string {
	return config.SchemeHTTP + "://" + s.Addr() + config.RouteRoot
}

// Routes builds the HTTP handler tree.
func (s *AgeServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get(config.RouteRoot, s.instrument(config.RouteRoot, s.handleIndex))
	r.Get(config.RouteAPIAge, s.instrument(config.RouteAPIAge, s.handleAPIAge))
	r.Get(config.RouteCalendar, s.instrument(config.RouteCalendar, s.handleCalendar))
	r.Method(http.MethodGet, config.RouteMetrics, s.metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})

	return r
}

// Start runs the HTTP server and blocks until the context is cancelled.
func (s *AgeServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Routes(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, srv.Addr,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}
