package token

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestMemorySource(t *testing.T) {
	src := NewMemorySource(Pair{})

	p, err := src.Pair()
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}
	if !p.IsZero() {
		t.Error("expected zero pair initially")
	}

	if err := src.Set(Pair{Access: "a1", Refresh: "r1"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := src.SetAccess("a2"); err != nil {
		t.Fatalf("SetAccess failed: %v", err)
	}

	p, _ = src.Pair()
	if p.Access != "a2" || p.Refresh != "r1" {
		t.Errorf("got pair %+v, want access a2 refresh r1", p)
	}

	if err := src.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	p, _ = src.Pair()
	if !p.IsZero() {
		t.Error("expected zero pair after Clear")
	}
}

func TestFileSource_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "credentials.json")
	src := NewFileSource(path)

	// Missing file reads as anonymous, not an error.
	p, err := src.Pair()
	if err != nil {
		t.Fatalf("Pair on missing file: %v", err)
	}
	if !p.IsZero() {
		t.Error("expected zero pair for missing file")
	}

	if err := src.Set(Pair{Access: "acc", Refresh: "ref"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat credentials: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("credentials mode = %o, want 600", perm)
	}

	p, err = src.Pair()
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}
	if p.Access != "acc" || p.Refresh != "ref" {
		t.Errorf("got pair %+v after round trip", p)
	}

	if err := src.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected credentials file to be removed")
	}
	// Clearing twice is fine.
	if err := src.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestPeekClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	access := signTestToken(t, jwt.MapClaims{
		"sub":      "42",
		"username": "ana",
		"role":     "participant",
		"exp":      exp.Unix(),
	})

	c, err := PeekClaims(access)
	if err != nil {
		t.Fatalf("PeekClaims failed: %v", err)
	}
	if c.UserID != "42" || c.Username != "ana" || c.Role != "participant" {
		t.Errorf("unexpected claims: %+v", c)
	}
	if !c.Expiry.Equal(exp) {
		t.Errorf("expiry = %v, want %v", c.Expiry, exp)
	}
	if c.IsExpired() {
		t.Error("token should not be expired")
	}
}

func TestPeekClaims_ExpiredTokenStillParses(t *testing.T) {
	access := signTestToken(t, jwt.MapClaims{
		"sub": "7",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	// Expired tokens must still decode: the refresh flow needs the claims.
	c, err := PeekClaims(access)
	if err != nil {
		t.Fatalf("PeekClaims failed on expired token: %v", err)
	}
	if !c.IsExpired() {
		t.Error("expected IsExpired to be true")
	}
}

func TestPeekClaims_Garbage(t *testing.T) {
	if _, err := PeekClaims("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}
