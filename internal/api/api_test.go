package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/celerix-dev/ivr-reports/internal/channel"
	"github.com/celerix-dev/ivr-reports/internal/dashboard"
	"github.com/celerix-dev/ivr-reports/internal/engine"
	"github.com/celerix-dev/ivr-reports/internal/session"
	"github.com/celerix-dev/ivr-reports/pkg/schema"
	"github.com/celerix-dev/ivr-reports/pkg/sdk"
)

type stubBackend struct {
	records  []schema.InteractionRecord
	fetchErr error
	filters  schema.FilterCriteria
}

func (s *stubBackend) Login(_ context.Context, username, password string) (*schema.User, error) {
	if password != "secret" {
		return nil, &sdk.StatusError{Op: "login", StatusCode: 401, Err: sdk.ErrInvalidCredentials}
	}
	return &schema.User{ID: "u1", DisplayName: "Ana", Username: username}, nil
}

func (s *stubBackend) FetchRecords(_ context.Context, filters schema.FilterCriteria) ([]schema.InteractionRecord, error) {
	s.filters = filters
	return s.records, s.fetchErr
}

func setupTestRouter(backend *stubBackend) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(engine.NewMemStore(nil, nil))
	h := &Handler{App: dashboard.New(backend, session.NewAuthState(store))}
	r := gin.New()

	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	authed := r.Group("", h.RequireSession)
	authed.GET("/session", h.Session)
	authed.GET("/records", h.Records)
	authed.PUT("/filters", h.SetFilters)
	authed.DELETE("/filters", h.ClearFilters)
	authed.GET("/stats", h.Stats)
	authed.GET("/export", h.Export)

	return r, h
}

func sampleRecords() []schema.InteractionRecord {
	return []schema.InteractionRecord{
		{ID: "1", Channel: schema.Ptr("Call Center"), Menu: schema.Ptr("Pagos")},
		{ID: "2", Channel: schema.Ptr("whatsapp-in"), Menu: schema.Ptr("Saldo")},
		{ID: "3", Channel: schema.Ptr("facebook-msg"), Menu: schema.Ptr("Pagos")},
	}
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := do(r, "POST", "/login", gin.H{"username": "ana", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 on login, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	r, h := setupTestRouter(&stubBackend{records: sampleRecords()})
	login(t, r)

	if !h.App.LoggedIn() {
		t.Fatalf("Expected a session after login")
	}
	if got := len(h.App.Records()); got != 3 {
		t.Errorf("Expected 3 records loaded on login, got %d", got)
	}
}

func TestLogin_Rejected(t *testing.T) {
	r, _ := setupTestRouter(&stubBackend{})

	w := do(r, "POST", "/login", gin.H{"username": "ana", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Credenciales inválidas" {
		t.Errorf("Expected invalid credentials message, got %q", resp["error"])
	}
}

func TestLogin_MissingFields(t *testing.T) {
	r, _ := setupTestRouter(&stubBackend{})

	w := do(r, "POST", "/login", gin.H{"username": "ana"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestRequireSession(t *testing.T) {
	r, _ := setupTestRouter(&stubBackend{})

	for _, path := range []string{"/session", "/records", "/stats", "/export"} {
		w := do(r, "GET", path, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", path, w.Code)
		}
	}
}

func TestRecords_SearchAndPage(t *testing.T) {
	r, _ := setupTestRouter(&stubBackend{records: sampleRecords()})
	login(t, r)

	w := do(r, "GET", "/records?q=pagos", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var view dashboard.View
	json.Unmarshal(w.Body.Bytes(), &view)
	if len(view.Rows) != 2 || view.Page.Matched != 2 || view.Page.Total != 3 {
		t.Errorf("Expected 2 of 3 rows, got %+v", view.Page)
	}

	w = do(r, "GET", "/records?page=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a bad page, got %d", w.Code)
	}

	w = do(r, "GET", "/records?page=7", nil)
	json.Unmarshal(w.Body.Bytes(), &view)
	if view.Page.Page != 1 {
		t.Errorf("Expected out of range page to be ignored, got page %d", view.Page.Page)
	}
}

func TestFilters(t *testing.T) {
	backend := &stubBackend{records: sampleRecords()}
	r, _ := setupTestRouter(backend)
	login(t, r)

	w := do(r, "PUT", "/filters", gin.H{"startDate": "2024-03-01", "canal": "todos"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if backend.filters != (schema.FilterCriteria{StartDate: "2024-03-01"}) {
		t.Errorf("Unexpected filters sent: %+v", backend.filters)
	}

	w = do(r, "DELETE", "/filters", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if backend.filters != (schema.FilterCriteria{}) {
		t.Errorf("Expected filters cleared, got %+v", backend.filters)
	}
}

func TestFilters_FetchFails(t *testing.T) {
	backend := &stubBackend{records: sampleRecords()}
	r, h := setupTestRouter(backend)
	login(t, r)

	backend.fetchErr = &sdk.StatusError{Op: "fetch records", StatusCode: 500, Err: sdk.ErrFetchFailed}
	w := do(r, "PUT", "/filters", gin.H{"canal": "whatsapp"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error al cargar datos") {
		t.Errorf("Expected fetch error message, got %s", w.Body.String())
	}
	if got := len(h.App.Records()); got != 3 {
		t.Errorf("Expected prior records kept, got %d", got)
	}
}

func TestStats(t *testing.T) {
	r, _ := setupTestRouter(&stubBackend{records: sampleRecords()})
	login(t, r)

	w := do(r, "GET", "/stats", nil)
	var stats channel.Stats
	json.Unmarshal(w.Body.Bytes(), &stats)
	if stats != (channel.Stats{Calls: 1, WhatsApp: 1, Messenger: 1}) {
		t.Errorf("Expected 1/1/1, got %+v", stats)
	}
}

func TestExport(t *testing.T) {
	r, _ := setupTestRouter(&stubBackend{records: sampleRecords()})
	login(t, r)

	w := do(r, "GET", "/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "reporte_ivr_") {
		t.Errorf("Expected report filename, got %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "\uFEFFNo.,") {
		t.Errorf("Expected BOM and header, got %q", w.Body.String()[:10])
	}
}

func TestExport_Empty(t *testing.T) {
	r, _ := setupTestRouter(&stubBackend{})
	login(t, r)

	w := do(r, "GET", "/export", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestLogout(t *testing.T) {
	r, h := setupTestRouter(&stubBackend{records: sampleRecords()})
	login(t, r)

	w := do(r, "POST", "/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if h.App.LoggedIn() {
		t.Errorf("Expected no session after logout")
	}
	if w = do(r, "GET", "/records", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 after logout, got %d", w.Code)
	}
}
