package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/me/smecert/internal/api"
	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/internal/token"
)

// startFakeAPI serves a minimal upstream: /token/ issues a pair, /users/me/
// returns a profile for the issued access token, /participants/import echoes
// per-row verdicts.
func startFakeAPI(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	importCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token/", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Username != "maria" || creds.Password != "s3cret-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "credenciais inválidas"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access": "acc-1", "refresh": "ref-1"})
	})
	mux.HandleFunc("GET /users/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc-1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "token inválido"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "username": "maria", "email": "maria@example.com", "role": "admin",
		})
	})
	mux.HandleFunc("POST /participants/import", func(w http.ResponseWriter, r *http.Request) {
		importCalls++
		var records []map[string]any
		json.NewDecoder(r.Body).Decode(&records)
		results := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			results = append(results, map[string]any{
				"tempId": rec["tempId"], "importStatus": "success",
			})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "message": "importado", "results": results,
		})
	})
	mux.HandleFunc("POST /certificates/validate/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UniqueCode string `json:"unique_code"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.UniqueCode != "good-code" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "não encontrado"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"is_valid": true, "participant_name": "Maria", "total_hours": 8.0,
		})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, &importCalls
}

// setupCLI points the package-level client at the fake API with a temp
// credentials file, the way PersistentPreRunE does for a real run.
func setupCLI(t *testing.T, baseURL string) *token.FileSource {
	t.Helper()
	src := token.NewFileSource(filepath.Join(t.TempDir(), "credentials.json"))
	logger = logging.Discard()
	tokens = src
	client = api.NewClient(baseURL, tokens, logger)
	return src
}

func runCmd(t *testing.T, cmd *cobra.Command) error {
	t.Helper()
	cmd.SetContext(context.Background())
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLogin_StoresCredentials(t *testing.T) {
	ts, _ := startFakeAPI(t)
	src := setupCLI(t, ts.URL)

	cmd := newLoginCmd()
	cmd.SetArgs([]string{"-u", "maria", "-p", "s3cret-pass"})
	if err := runCmd(t, cmd); err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := src.Pair()
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if pair.Access != "acc-1" || pair.Refresh != "ref-1" {
		t.Errorf("stored pair = %+v", pair)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ts, _ := startFakeAPI(t)
	src := setupCLI(t, ts.URL)

	cmd := newLoginCmd()
	cmd.SetArgs([]string{"-u", "maria", "-p", "wrong"})
	if err := runCmd(t, cmd); err == nil {
		t.Fatal("expected error for bad credentials")
	}

	pair, _ := src.Pair()
	if !pair.IsZero() {
		t.Errorf("credentials stored despite failed login: %+v", pair)
	}
}

func TestWhoami_RequiresLogin(t *testing.T) {
	ts, _ := startFakeAPI(t)
	setupCLI(t, ts.URL)

	cmd := newWhoamiCmd()
	if err := runCmd(t, cmd); err == nil {
		t.Fatal("expected error when not logged in")
	}
}

// expiredJWT signs a token whose exp already passed; claims are peeked, not
// verified, so the key does not matter.
func expiredJWT(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	s, err := tok.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestWhoami_SpentTokenClearedWithoutAPICall(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	src := setupCLI(t, ts.URL)
	if err := src.Set(token.Pair{Access: expiredJWT(t)}); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}

	if err := runCmd(t, newWhoamiCmd()); err == nil {
		t.Fatal("expected error for an expired token pair")
	}
	if calls != 0 {
		t.Errorf("API calls = %d, want 0", calls)
	}
	pair, err := src.Pair()
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if !pair.IsZero() {
		t.Errorf("spent credentials not cleared: %+v", pair)
	}
}

func TestWhoami_RejectedTokenClearsCredentials(t *testing.T) {
	ts, _ := startFakeAPI(t)
	src := setupCLI(t, ts.URL)
	if err := src.Set(token.Pair{Access: "revoked"}); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}

	if err := runCmd(t, newWhoamiCmd()); err == nil {
		t.Fatal("expected error for a rejected token")
	}

	pair, err := src.Pair()
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if !pair.IsZero() {
		t.Errorf("rejected credentials not cleared: %+v", pair)
	}
}

func TestLogout_RemovesCredentials(t *testing.T) {
	ts, _ := startFakeAPI(t)
	src := setupCLI(t, ts.URL)
	if err := src.Set(token.Pair{Access: "acc-1", Refresh: "ref-1"}); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}

	cmd := newLogoutCmd()
	if err := runCmd(t, cmd); err != nil {
		t.Fatalf("logout: %v", err)
	}

	pair, err := src.Pair()
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if !pair.IsZero() {
		t.Errorf("credentials still present: %+v", pair)
	}
}

func TestImport_SubmitsBatch(t *testing.T) {
	ts, importCalls := startFakeAPI(t)
	src := setupCLI(t, ts.URL)
	if err := src.Set(token.Pair{Access: "acc-1", Refresh: "ref-1"}); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}

	csvPath := filepath.Join(t.TempDir(), "sheet.csv")
	writeFile(t, csvPath, "Nome,Email,CPF\nAna,ana@example.com,123\nBia,bia@example.com,\n")

	cmd := newImportCmd()
	cmd.SetArgs([]string{csvPath})
	if err := runCmd(t, cmd); err != nil {
		t.Fatalf("import: %v", err)
	}
	if *importCalls != 1 {
		t.Errorf("import calls = %d, want 1", *importCalls)
	}
}

func TestValidate_InvalidCodeFails(t *testing.T) {
	ts, _ := startFakeAPI(t)
	setupCLI(t, ts.URL)

	cmd := newValidateCmd()
	cmd.SetArgs([]string{"bogus"})
	if err := runCmd(t, cmd); err == nil {
		t.Fatal("expected error for invalid code")
	}

	cmd = newValidateCmd()
	cmd.SetArgs([]string{"good-code"})
	if err := runCmd(t, cmd); err != nil {
		t.Fatalf("validate good code: %v", err)
	}
}
