// Package session implements the auth controller: it owns the lifecycle of
// browser sessions (login, register, logout, resolution from a request) and
// binds API clients to the token pair stored in the session row.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/me/smecert/internal/api"
	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/internal/store"
	"github.com/me/smecert/internal/token"
	"github.com/me/smecert/pkg/model"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 24 * time.Hour

// Manager handles session creation, resolution and teardown.
type Manager struct {
	store   store.Store
	baseURL string
	logger  *slog.Logger
	ttl     time.Duration
	apiOpts []api.Option
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTTL sets the session lifetime.
func WithTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithAPIOptions passes options through to every API client the manager
// creates (timeouts; custom http.Client in tests).
func WithAPIOptions(opts ...api.Option) ManagerOption {
	return func(m *Manager) {
		m.apiOpts = opts
	}
}

// NewManager creates a session manager talking to the API at baseURL.
func NewManager(st store.Store, baseURL string, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	m := &Manager{
		store:   st,
		baseURL: baseURL,
		logger:  logger.With("component", "session"),
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AnonymousClient returns an API client with no tokens bound, for public
// endpoints (certificate validation, registration, login).
func (m *Manager) AnonymousClient() *api.Client {
	return api.NewClient(m.baseURL, token.NewMemorySource(token.Pair{}), m.logger, m.apiOpts...)
}

// Client returns an API client bound to the session's token pair. Rotated
// access tokens are written back to the session row; a failed refresh
// deletes the row, terminating the session.
func (m *Manager) Client(ctx context.Context, sess *model.Session) *api.Client {
	src := &sessionSource{ctx: ctx, store: m.store, sess: sess, logger: m.logger}
	return api.NewClient(m.baseURL, src, m.logger, m.apiOpts...)
}

// Login trades credentials for a token pair, fetches the profile and creates
// a session. On any failure no session exists and the returned error carries
// field-keyed messages for the login form.
func (m *Manager) Login(ctx context.Context, username, password string) (*model.Session, error) {
	src := token.NewMemorySource(token.Pair{})
	client := api.NewClient(m.baseURL, src, m.logger, m.apiOpts...)

	pair, err := client.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		m.logger.Warn("login failed", "username", username, "error", err)
		return nil, err
	}

	user, err := client.Me(ctx)
	if err != nil {
		m.logger.Warn("profile fetch after login failed", "username", username, "error", err)
		return nil, err
	}

	sess, err := m.createSession(ctx, user, pair)
	if err != nil {
		return nil, err
	}

	m.logger.Info("user logged in", "username", user.Username, "role", user.Role, "session", sess.ID)
	return sess, nil
}

func (m *Manager) createSession(ctx context.Context, user *model.User, pair token.Pair) (*model.Session, error) {
	now := time.Now().UTC()
	sess := &model.Session{
		ID:           "sess_" + uuid.NewString(),
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
	}
	if err := m.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Register creates an account without touching session state.
func (m *Manager) Register(ctx context.Context, reg api.Registration) (*model.User, error) {
	return m.AnonymousClient().Register(ctx, reg)
}

// Logout deletes the session row. No upstream round-trip is required: the
// tokens die with the row.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if err := m.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	m.logger.Info("user logged out", "session", sessionID)
	return nil
}

// FromRequest resolves the session referenced by the request cookie.
// Returns nil (anonymous) when there is no cookie, the session is unknown,
// or it has expired; expired rows are deleted on the way out.
func (m *Manager) FromRequest(r *http.Request) (*model.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	sess, err := m.store.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		return nil, nil
	}
	if sess.IsExpired() {
		_ = m.store.DeleteSession(r.Context(), sess.ID)
		return nil, nil
	}
	// Access-token exp bounds the row's TTL: with no refresh token the
	// pair can never authenticate again once the access token lapses.
	if sess.RefreshToken == "" {
		if claims, perr := token.PeekClaims(sess.AccessToken); perr == nil && claims.IsExpired() {
			_ = m.store.DeleteSession(r.Context(), sess.ID)
			return nil, nil
		}
	}
	return sess, nil
}

// CleanupExpired removes expired session rows.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpiredSessions(ctx)
}
