// Package ui implements the web interface: route registration, the
// role-based route guard, and the page handlers for the admin and
// participant areas.
package ui

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/internal/session"
	"github.com/me/smecert/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	sessions *session.Manager
	logger   *slog.Logger
	validate *validator.Validate
	secure   bool // Use secure cookies (HTTPS)
}

// Config holds UI configuration.
type Config struct {
	Secure bool // Use secure cookies for HTTPS
}

// New creates a new UI handler.
func New(sessions *session.Manager, logger *slog.Logger, cfg Config) *UI {
	if logger == nil {
		logger = logging.Discard()
	}
	return &UI{
		sessions: sessions,
		logger:   logger.With("component", "ui"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		secure:   cfg.Secure,
	}
}

// render writes a page, falling back to a bare 500 when the template fails.
func (ui *UI) render(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderTemplate(w, name, data); err != nil {
		ui.logger.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// renderStatus is render with a non-200 status code (404 page, form errors
// answered with 422).
func (ui *UI) renderStatus(w http.ResponseWriter, status int, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderTemplate(w, name, data); err != nil {
		ui.logger.Error("render failed", "template", name, "error", err)
	}
}

// renderUpstreamError handles a failed data fetch for a page. An expired
// session means the refresh already failed and the session row is gone;
// a not-authenticated error means the session has no usable tokens left.
// Both send the user back to the login page. Anything else re-renders the
// page with an error banner and no data.
func (ui *UI) renderUpstreamError(w http.ResponseWriter, r *http.Request, name string, data map[string]any, err error) {
	if errors.Is(err, model.ErrSessionExpired) || errors.Is(err, model.ErrNotAuthenticated) {
		session.ClearCookie(w)
		redirectToLogin(w, r)
		return
	}
	ui.logger.Error("page data fetch failed", "template", name, "error", err)

	status := http.StatusBadGateway
	var netErr *model.NetworkError
	if errors.As(err, &netErr) {
		data["Error"] = "Não foi possível contatar o servidor. Tente novamente mais tarde."
	} else {
		data["Error"] = "Erro ao carregar os dados."
		status = http.StatusInternalServerError
	}
	ui.renderStatus(w, status, name, data)
}
