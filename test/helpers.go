package test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/rentledger/internal/handler"
	"github.com/yourorg/rentledger/internal/infrastructure/logger"
	"github.com/yourorg/rentledger/internal/repository"
	"github.com/yourorg/rentledger/internal/security"
	"github.com/yourorg/rentledger/internal/security/audit"
	"github.com/yourorg/rentledger/internal/security/auth"
	"github.com/yourorg/rentledger/internal/security/middleware"
	"github.com/yourorg/rentledger/internal/service"
	"github.com/yourorg/rentledger/internal/store"
)

// TestServerHelper runs the full HTTP surface against a throwaway data
// directory
type TestServerHelper struct {
	Server   *httptest.Server
	Logger   *slog.Logger
	Sessions *store.SessionManager

	closeFns []func()
}

func NewTestServer(t *testing.T) *TestServerHelper {
	t.Helper()

	log := logger.NewLogger("debug", "test")
	dataDir := t.TempDir()
	ctx := context.Background()

	credentialsDB, err := store.Open(ctx, store.CredentialsDBPath(dataDir), log)
	if err != nil {
		t.Fatalf("failed to open credentials database: %v", err)
	}
	if err := store.EnsureUsersSchema(credentialsDB); err != nil {
		t.Fatalf("failed to ensure users schema: %v", err)
	}

	sessions := store.NewSessionManager(dataDir, log)
	userRepo := repository.NewSqliteUserRepository(credentialsDB, log)
	authService := service.NewAuthService(userRepo, sessions, log)

	tokenManager := auth.NewTokenManager("integration-test-secret", "rentledger")
	auditLogger := audit.NewLogger(log)
	authz := security.NewAuthorizationService(log)

	authHandler := handler.NewAuthHandler(authService, tokenManager, time.Hour, auditLogger, log)
	propertiesHandler := handler.NewPropertiesHandler(sessions, auditLogger, log)
	tenantsHandler := handler.NewTenantsHandler(sessions, log)
	maintenanceHandler := handler.NewMaintenanceHandler(sessions, log)
	paymentsHandler := handler.NewPaymentsHandler(sessions, log)
	expensesHandler := handler.NewExpensesHandler(sessions, log)
	dashboardHandler := handler.NewDashboardHandler(sessions, time.Second, log)
	healthHandler := handler.NewHealthHandler(credentialsDB, log)
	reportsHandler := handler.NewReportsHandler(sessions, authz, log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/account/password", authHandler.ChangePassword)

	mux.HandleFunc("GET /api/properties", propertiesHandler.List)
	mux.HandleFunc("POST /api/properties", propertiesHandler.Save)
	mux.HandleFunc("GET /api/properties/{id}", propertiesHandler.Get)
	mux.HandleFunc("DELETE /api/properties/{id}", propertiesHandler.Delete)

	mux.HandleFunc("GET /api/tenants", tenantsHandler.List)
	mux.HandleFunc("POST /api/tenants", tenantsHandler.Save)
	mux.HandleFunc("GET /api/properties/{id}/tenants", tenantsHandler.List)

	mux.HandleFunc("POST /api/maintenance", maintenanceHandler.Report)
	mux.HandleFunc("GET /api/properties/{id}/maintenance", maintenanceHandler.List)

	mux.HandleFunc("POST /api/payments", paymentsHandler.Record)
	mux.HandleFunc("GET /api/tenants/{id}/payments", paymentsHandler.ListForTenant)

	mux.HandleFunc("POST /api/expenses", expensesHandler.Record)
	mux.HandleFunc("GET /api/properties/{id}/expenses", expensesHandler.List)

	mux.HandleFunc("GET /api/reports/pdf", reportsHandler.ExportPDF)
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Summary)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Readiness)

	root := middleware.RequestIDMiddleware()(
		middleware.JWTMiddleware(tokenManager, log)(mux),
	)

	server := httptest.NewServer(root)

	return &TestServerHelper{
		Server:   server,
		Logger:   log,
		Sessions: sessions,
		closeFns: []func(){
			server.Close,
			sessions.CloseAll,
			func() { credentialsDB.Close() },
		},
	}
}

func (h *TestServerHelper) Close() {
	for _, fn := range h.closeFns {
		fn()
	}
}

func (h *TestServerHelper) URL() string {
	return h.Server.URL
}

// Register creates an account and returns a login token for it
func (h *TestServerHelper) Register(t *testing.T, username, password string) string {
	t.Helper()

	resp := h.PostJSON(t, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()
	AssertStatusCode(t, resp, http.StatusCreated)

	resp = h.PostJSON(t, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	defer resp.Body.Close()
	AssertStatusCode(t, resp, http.StatusOK)

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if body.Token == "" {
		t.Fatalf("expected token from login")
	}
	return body.Token
}

// PostJSON sends a JSON body with an optional bearer token
func (h *TestServerHelper) PostJSON(t *testing.T, path, token string, payload interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, h.URL()+path, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// GetJSON fetches a path with a bearer token and decodes the response
func (h *TestServerHelper) GetJSON(t *testing.T, path, token string, out interface{}) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, h.URL()+path, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if out != nil && resp.StatusCode == http.StatusOK {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp
}

// decode drains a response body into out and closes it
func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// AssertStatusCode helper function
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}
