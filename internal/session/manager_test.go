package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/internal/store"
	"github.com/me/smecert/pkg/model"
)

func setupTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}

// fakeUpstream counts calls so tests can assert which endpoints were hit.
type fakeUpstream struct {
	mux          *http.ServeMux
	loginCalls   int
	meCalls      int
	refreshCalls int
	anyCalls     int
}

func newFakeUpstream(t *testing.T) (*fakeUpstream, string) {
	t.Helper()
	f := &fakeUpstream{mux: http.NewServeMux()}
	f.mux.HandleFunc("POST /token/", func(w http.ResponseWriter, r *http.Request) {
		f.loginCalls++
		var creds struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "right" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "no active account found with the given credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "acc-1", "refresh": "ref-1"})
	})
	f.mux.HandleFunc("POST /token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls++
		json.NewEncoder(w).Encode(map[string]string{"access": "acc-2"})
	})
	f.mux.HandleFunc("GET /users/me/", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls++
		// Only the tokens this fake issued are valid.
		if auth := r.Header.Get("Authorization"); auth != "Bearer acc-1" && auth != "Bearer acc-2" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "token invalid or expired"})
			return
		}
		json.NewEncoder(w).Encode(model.User{ID: 42, Username: "ana", Role: model.RoleParticipant})
	})

	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.anyCalls++
		f.mux.ServeHTTP(w, r)
	})
	srv := httptest.NewServer(wrapped)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func TestManager_Login(t *testing.T) {
	st := setupTestStore(t)
	f, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	sess, err := m.Login(context.Background(), "ana", "right")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.Username != "ana" || sess.Role != model.RoleParticipant {
		t.Errorf("unexpected session: %+v", sess)
	}
	if sess.AccessToken != "acc-1" || sess.RefreshToken != "ref-1" {
		t.Errorf("token pair not stored on session: %+v", sess)
	}
	if f.loginCalls != 1 || f.meCalls != 1 {
		t.Errorf("login=%d me=%d, want 1 and 1", f.loginCalls, f.meCalls)
	}

	// The session row is persisted.
	got, err := st.GetSession(context.Background(), sess.ID)
	if err != nil || got == nil {
		t.Fatalf("session row missing: %v", err)
	}
}

func TestManager_Login_BadCredentials(t *testing.T) {
	st := setupTestStore(t)
	f, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	sess, err := m.Login(context.Background(), "ana", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if sess != nil {
		t.Error("no session may exist after a failed login")
	}
	if f.meCalls != 0 {
		t.Errorf("profile fetched after failed login (%d calls)", f.meCalls)
	}
}

func TestManager_Logout_NoUpstreamCall(t *testing.T) {
	st := setupTestStore(t)
	f, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	sess, err := m.Login(context.Background(), "ana", "right")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	callsBefore := f.anyCalls

	if err := m.Logout(context.Background(), sess.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if f.anyCalls != callsBefore {
		t.Error("logout must not call the upstream API")
	}
	if got, _ := st.GetSession(context.Background(), sess.ID); got != nil {
		t.Error("session row must be gone after logout")
	}
}

func TestManager_FromRequest(t *testing.T) {
	st := setupTestStore(t)
	_, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	sess, err := m.Login(context.Background(), "ana", "right")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/participant/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sess.ID})

	got, err := m.FromRequest(r)
	if err != nil {
		t.Fatalf("FromRequest failed: %v", err)
	}
	if got == nil || got.ID != sess.ID {
		t.Errorf("got %+v, want session %s", got, sess.ID)
	}

	// No cookie -> anonymous, not an error.
	anon, err := m.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || anon != nil {
		t.Errorf("expected anonymous, got %+v err %v", anon, err)
	}

	// Unknown cookie -> anonymous.
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(&http.Cookie{Name: CookieName, Value: "sess_unknown"})
	if got, _ := m.FromRequest(r2); got != nil {
		t.Error("unknown session id must resolve to anonymous")
	}
}

func TestManager_FromRequest_ExpiredSessionDeleted(t *testing.T) {
	st := setupTestStore(t)
	_, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	expired := &model.Session{
		ID:        "sess_old",
		UserID:    1,
		Username:  "ana",
		Role:      model.RoleParticipant,
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := st.CreateSession(context.Background(), expired); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "sess_old"})

	if got, _ := m.FromRequest(r); got != nil {
		t.Error("expired session must resolve to anonymous")
	}
	if row, _ := st.GetSession(context.Background(), "sess_old"); row != nil {
		t.Error("expired row should have been deleted")
	}
}

func TestManager_ClientRefreshPersistsIntoRow(t *testing.T) {
	st := setupTestStore(t)
	f, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	sess, err := m.Login(context.Background(), "ana", "right")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Make the stored access token stale so the next call 401s.
	if err := st.UpdateSessionTokens(context.Background(), sess.ID, "stale", sess.RefreshToken); err != nil {
		t.Fatal(err)
	}
	sess.AccessToken = "stale"

	client := m.Client(context.Background(), sess)
	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if f.refreshCalls != 1 {
		t.Errorf("refresh calls = %d, want 1", f.refreshCalls)
	}

	row, _ := st.GetSession(context.Background(), sess.ID)
	if row.AccessToken != "acc-2" {
		t.Errorf("rotated access token not persisted: %q", row.AccessToken)
	}
	if row.RefreshToken != "ref-1" {
		t.Errorf("refresh token must survive rotation: %q", row.RefreshToken)
	}
}

// expiredJWT signs a token whose exp already passed. Signature validity is
// irrelevant: claims are only peeked, never verified.
func expiredJWT(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestManager_FromRequest_SpentAccessTokenDeletesRow(t *testing.T) {
	st := setupTestStore(t)
	_, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	spent := &model.Session{
		ID:          "sess_spent",
		UserID:      1,
		Username:    "ana",
		Role:        model.RoleParticipant,
		AccessToken: expiredJWT(t),
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	if err := st.CreateSession(context.Background(), spent); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "sess_spent"})

	if got, _ := m.FromRequest(r); got != nil {
		t.Error("session with an expired access token and no refresh token must resolve to anonymous")
	}
	if row, _ := st.GetSession(context.Background(), "sess_spent"); row != nil {
		t.Error("unrecoverable row should have been deleted")
	}
}

func TestManager_FromRequest_RefreshTokenKeepsSessionAlive(t *testing.T) {
	st := setupTestStore(t)
	_, url := newFakeUpstream(t)
	m := NewManager(st, url, logging.Discard())

	recoverable := &model.Session{
		ID:           "sess_refresh",
		UserID:       1,
		Username:     "ana",
		Role:         model.RoleParticipant,
		AccessToken:  expiredJWT(t),
		RefreshToken: "ref-1",
		CreatedAt:    time.Now(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := st.CreateSession(context.Background(), recoverable); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "sess_refresh"})

	got, err := m.FromRequest(r)
	if err != nil {
		t.Fatalf("FromRequest failed: %v", err)
	}
	if got == nil {
		t.Fatal("a session with a refresh token can still recover; it must not be dropped")
	}
}
