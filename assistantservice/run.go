// Package assistantservice boots the calendar-assistant HTTP server.
package assistantservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/alignai/alignai/internal/ai"
	"github.com/alignai/alignai/internal/api"
	"github.com/alignai/alignai/internal/calendar"
	"github.com/alignai/alignai/internal/config"
	"github.com/alignai/alignai/internal/logger"
	"github.com/alignai/alignai/internal/planner"
	"github.com/alignai/alignai/internal/session"
)

// Run starts the assistant HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("alignai-server")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	store, err := newSessionStore(cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Session store unavailable")
		return err
	}

	connector := calendar.NewGoogleConnector(
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, cfg.CalendarTimezone)
	pl := planner.NewPlanner(newCompleter(cfg, log), cfg.CalendarTimezone, log)

	router := api.NewRouter(cfg, store, connector, pl)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newSessionStore(cfg *config.Config, log zerolog.Logger) (session.Store, error) {
	switch cfg.SessionStore {
	case "sqlite":
		log.Info().Str("path", cfg.SessionDBPath).Msg("Using sqlite session store")
		return session.NewSqliteStore(cfg.SessionDBPath)
	default:
		log.Info().Msg("Using in-memory session store")
		return session.NewMemoryStore(), nil
	}
}

// newCompleter returns nil when no model key is configured; the planner
// then answers every request deterministically.
func newCompleter(cfg *config.Config, log zerolog.Logger) ai.Completer {
	if !cfg.HasOpenAIKey() {
		log.Warn().Msg("OPENAI_API_KEY not set, AI planning disabled")
		return nil
	}
	return ai.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
