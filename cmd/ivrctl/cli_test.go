package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type stubAPI struct {
	mu      sync.Mutex
	queries []string
}

func (s *stubAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":          "u1",
			"usrName":     "Ana Pérez",
			"usrUserName": creds["username"],
		})
	})
	mux.HandleFunc("/api/ivr/data", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.queries = append(s.queries, r.URL.RawQuery)
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "1", "ivrDateStart": "2024-03-05 14:30:00", "ivrCanal": "Call Center", "ivrMenu": "Pagos", "ivrInteractionId": "completado"},
			{"id": "2", "ivrDateStart": "2024-03-05 15:00:00", "ivrCanal": "whatsapp-in", "ivrMenu": "Saldo"},
			{"id": "3", "ivrCanal": "facebook-msg", "ivrUserId": 77},
		})
	})
	return mux
}

func (s *stubAPI) lastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[len(s.queries)-1]
}

func setupCLI(t *testing.T) (*stubAPI, string) {
	t.Helper()
	api := &stubAPI{}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	exportDir := t.TempDir()
	t.Setenv("IVR_API_URL", srv.URL)
	t.Setenv("IVR_DATA_DIR", t.TempDir())
	t.Setenv("IVR_EXPORT_DIR", exportDir)
	return api, exportDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	b := &strings.Builder{}
	root := NewRootCmd()
	root.SetOut(b)
	root.SetArgs(args)
	err := root.Execute()
	return b.String(), err
}

func TestCLI_LoginRecordsStatsExportLogout(t *testing.T) {
	api, exportDir := setupCLI(t)

	out, err := run(t, "login", "-u", "ana", "-p", "secret")
	if err != nil {
		t.Fatalf("login cmd failed: %v", err)
	}
	if !strings.Contains(out, "Bienvenido, Ana Pérez") {
		t.Errorf("unexpected login output: %q", out)
	}

	out, err = run(t, "whoami")
	if err != nil {
		t.Fatalf("whoami cmd failed: %v", err)
	}
	if !strings.Contains(out, "ana") {
		t.Errorf("unexpected whoami output: %q", out)
	}

	// Debug mode lists the stored slots; the session slot must be there.
	if _, err := run(t, "--debug", "whoami"); err != nil {
		t.Fatalf("whoami --debug cmd failed: %v", err)
	}
	entries, err := os.ReadDir(os.Getenv("IVR_DATA_DIR"))
	if err != nil || len(entries) != 1 || entries[0].Name() != "user.json" {
		t.Errorf("expected only the user slot on disk, got %v (%v)", entries, err)
	}

	out, err = run(t, "records", "--channel", "whatsapp", "--start-date", "2024-03-01")
	if err != nil {
		t.Fatalf("records cmd failed: %v", err)
	}
	if q := api.lastQuery(); q != "canal=whatsapp&startDate=2024-03-01" {
		t.Errorf("unexpected query sent: %q", q)
	}
	if !strings.Contains(out, "05/03/2024, 14:30:00") || !strings.Contains(out, "Página 1 de 1") {
		t.Errorf("unexpected records output: %q", out)
	}

	out, err = run(t, "records", "--search", "saldo", "--json")
	if err != nil {
		t.Fatalf("records --json cmd failed: %v", err)
	}
	var view struct {
		Rows []struct {
			ID string `json:"id"`
		} `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("records --json output is not JSON: %v", err)
	}
	if len(view.Rows) != 1 || view.Rows[0].ID != "2" {
		t.Errorf("expected only record 2, got %+v", view.Rows)
	}
	if q := api.lastQuery(); q != "" {
		t.Errorf("expected no query for todos, got %q", q)
	}

	out, err = run(t, "stats")
	if err != nil {
		t.Fatalf("stats cmd failed: %v", err)
	}
	for _, want := range []string{"Llamadas:  1", "WhatsApp:  1", "Messenger: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q: %q", want, out)
		}
	}

	out, err = run(t, "export")
	if err != nil {
		t.Fatalf("export cmd failed: %v", err)
	}
	path := strings.TrimSpace(out)
	if filepath.Dir(path) != exportDir || !strings.HasPrefix(filepath.Base(path), "reporte_ivr_") {
		t.Errorf("unexpected export path: %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 3 {
		t.Errorf("expected header plus 3 rows, got %d line breaks", lines)
	}

	if _, err := run(t, "logout"); err != nil {
		t.Fatalf("logout cmd failed: %v", err)
	}
	if _, err := run(t, "records"); err == nil {
		t.Errorf("expected records to fail after logout")
	}
}

func TestCLI_LoginRejected(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "login", "-u", "ana", "-p", "wrong")
	if err == nil || err.Error() != "Credenciales inválidas" {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := run(t, "whoami"); err == nil {
		t.Errorf("expected whoami to fail without a session")
	}
}

func TestCLI_PageOutOfRange(t *testing.T) {
	setupCLI(t)

	if _, err := run(t, "login", "-u", "ana", "-p", "secret"); err != nil {
		t.Fatalf("login cmd failed: %v", err)
	}
	if _, err := run(t, "records", "--page", "5"); err == nil {
		t.Errorf("expected an error for page 5 of 1")
	}
}
