// Package server assembles the smecert web frontend: router, middleware,
// session store wiring and the HTTP lifecycle.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/smecert/internal/api"
	"github.com/me/smecert/internal/config"
	"github.com/me/smecert/internal/session"
	"github.com/me/smecert/internal/store"
	"github.com/me/smecert/internal/ui"
)

// cleanupInterval is how often expired session rows are purged.
const cleanupInterval = time.Hour

// Server is the smecert web frontend server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	sessions  *session.Manager
	ui        *ui.UI
	staticDir string
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithStaticDir sets the directory served under /static/.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		staticDir: "ui/assets",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sessions = session.NewManager(st, cfg.APIBaseURL, logger,
		session.WithTTL(cfg.SessionTTL),
		session.WithAPIOptions(api.WithTimeout(cfg.APITimeout)),
	)
	s.ui = ui.New(s.sessions, logger, ui.Config{
		Secure: cfg.SecureCookies,
	})

	s.routes()
	return s
}

// StartCleanup begins the expired-session purge loop in a background
// goroutine. It stops when ctx is cancelled.
func (s *Server) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.sessions.CleanupExpired(ctx)
				if err != nil {
					s.logger.Error("session cleanup failed", "error", err)
					continue
				}
				if n > 0 {
					s.logger.Info("expired sessions purged", "count", n)
				}
			}
		}
	}()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr, "api", s.config.APIBaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// Static files (CSS, images)
	r.Handle("/static/*", ui.StaticHandler(s.staticDir))

	// Health (JSON, for probes)
	r.Get("/healthz", s.handleHealth)

	// UI routes (HTML); grouped so RegisterRoutes can add middleware
	// after the routes above are already registered on the mux.
	r.Group(func(r chi.Router) {
		s.ui.RegisterRoutes(r)
	})
}
