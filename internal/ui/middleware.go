package ui

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/me/smecert/pkg/model"
)

// Context keys for session data.
type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext retrieves the session from the request context.
// Nil means the request is anonymous.
func SessionFromContext(ctx context.Context) *model.Session {
	sess, _ := ctx.Value(sessionContextKey).(*model.Session)
	return sess
}

// WithSession resolves the session cookie once per request and stashes the
// session (if any) in the context. A store failure is treated as anonymous
// rather than an error page: the guard will send the user to login.
func (ui *UI) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := ui.sessions.FromRequest(r)
		if err != nil {
			ui.logger.Error("session lookup failed", "error", err)
		}
		if sess != nil {
			r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, sess))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles gates an area to the given roles. Anonymous requests are sent
// to the login page with the originally requested path preserved for
// post-login return; authenticated users with the wrong role land on their
// own role's home page. Must be used after WithSession.
func (ui *UI) RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				redirectToLogin(w, r)
				return
			}
			for _, role := range roles {
				if sess.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			ui.logger.Warn("role denied", "path", r.URL.Path, "role", sess.Role)
			http.Redirect(w, r, model.HomePath(sess.Role), http.StatusSeeOther)
		})
	}
}

// RedirectIfAuthenticated keeps login and registration pages away from
// authenticated users: they land on their role's home page instead.
func (ui *UI) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sess := SessionFromContext(r.Context()); sess != nil {
			http.Redirect(w, r, model.HomePath(sess.Role), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if next := r.URL.RequestURI(); next != "" && next != "/" {
		target += "?next=" + url.QueryEscape(next)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNextPath validates a post-login return path: it must be a relative
// path on this site. Anything else falls back to empty (role home).
func safeNextPath(next string) string {
	if next == "" {
		return ""
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
