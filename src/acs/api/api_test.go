package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/bitswalk/acs/src/acs/auth"
	"github.com/bitswalk/acs/src/acs/db"
	"github.com/bitswalk/acs/src/acs/db/migrations"
	"github.com/bitswalk/acs/src/common/errors"
	"github.com/bitswalk/acs/src/common/version"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router *gin.Engine
	users  *auth.Service
	engine *migrations.Engine
}

func setupTestServer(t *testing.T, migrate bool, rl RateLimitConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	database, err := db.OpenInMemory(ctx)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	engine, err := migrations.NewEngine(database.Conn, migrations.Default())
	if err != nil {
		t.Fatalf("failed to create migration engine: %v", err)
	}
	if migrate {
		if _, err := engine.Migrate(ctx); err != nil {
			t.Fatalf("failed to migrate: %v", err)
		}
	}

	users := auth.NewService(database.Conn, auth.NewBcryptHasher(bcrypt.MinCost), auth.DefaultPolicy())
	a := New(Config{
		Users:      users,
		Roles:      auth.NewRoleService(database.Conn),
		Migrations: engine,
		Version:    version.New("1.2.3", "2026-01-01", "abc1234"),
		RateLimit:  rl,
	})
	t.Cleanup(a.Close)

	router := gin.New()
	a.RegisterRoutes(router)
	return &testServer{router: router, users: users, engine: engine}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON body %q: %v", w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
	resp := decode[errors.Response](t, w)
	if resp.Error != code {
		t.Errorf("error = %q, want %q", resp.Error, code)
	}
}

func creds(username, password string) CredentialsRequest {
	return CredentialsRequest{Username: username, Password: password}
}

// =============================================================================
// Base Endpoint Tests
// =============================================================================

func TestBaseEndpoints(t *testing.T) {
	s := setupTestServer(t, true, RateLimitConfig{})

	w := s.do(t, http.MethodGet, "/v1/health", nil)
	if w.Code != http.StatusOK || decode[HealthResponse](t, w).Status != "healthy" {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/v1/version", nil)
	v := decode[VersionResponse](t, w)
	if v.Version != "1.2.3" || v.GitCommit != "abc1234" || v.GoVersion == "" {
		t.Errorf("version = %+v", v)
	}

	w = s.do(t, http.MethodGet, "/", nil)
	if info := decode[APIInfo](t, w); info.Name != "acs" || info.Endpoints.Login != "/v1/auth/login" {
		t.Errorf("root = %+v", info)
	}
}

// =============================================================================
// Account Endpoint Tests
// =============================================================================

func TestRegisterAndLogin(t *testing.T) {
	s := setupTestServer(t, true, RateLimitConfig{})

	w := s.do(t, http.MethodPost, "/v1/auth/register", creds(" alice ", "secret1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}
	if got := decode[RegisterResponse](t, w); got.Username != "alice" || !got.Created {
		t.Errorf("register = %+v", got)
	}

	w = s.do(t, http.MethodPost, "/v1/auth/register", creds("alice", "another1"))
	expectError(t, w, http.StatusConflict, "user.already_exists")

	w = s.do(t, http.MethodPost, "/v1/auth/login", creds("alice", "wrong-pass"))
	expectError(t, w, http.StatusUnauthorized, "auth.invalid_credentials")

	w = s.do(t, http.MethodPost, "/v1/auth/login", creds("nobody", "secret1"))
	expectError(t, w, http.StatusUnauthorized, "auth.invalid_credentials")

	w = s.do(t, http.MethodPost, "/v1/auth/login", creds("alice", "secret1"))
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	user := decode[map[string]any](t, w)
	if user["username"] != "alice" || user["is_logged"] != true {
		t.Errorf("login body = %v", user)
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Error("password hash exposed in response")
	}
}

func TestRegister_Validation(t *testing.T) {
	s := setupTestServer(t, true, RateLimitConfig{})

	tests := []struct {
		name string
		body any
		code string
	}{
		{"short username", creds("al", "secret1"), "validation.invalid_username"},
		{"empty username", creds("   ", "secret1"), "validation.invalid_username"},
		{"short password", creds("alice", "123"), "validation.invalid_password"},
		{"empty password", creds("alice", ""), "validation.invalid_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/v1/auth/register", tt.body)
			expectError(t, w, http.StatusBadRequest, tt.code)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	expectError(t, w, http.StatusBadRequest, "validation.invalid_json")

	list := s.do(t, http.MethodGet, "/v1/users", nil)
	if users := decode[[]auth.User](t, list); len(users) != 0 {
		t.Errorf("rejected registrations created %d users", len(users))
	}
}

func TestUserLifecycle(t *testing.T) {
	s := setupTestServer(t, true, RateLimitConfig{})
	ctx := context.Background()

	s.do(t, http.MethodPost, "/v1/auth/register", creds("alice", "secret1"))
	s.do(t, http.MethodPost, "/v1/auth/register", creds("bob", "secret2"))
	s.do(t, http.MethodPost, "/v1/auth/login", creds("alice", "secret1"))

	alice, err := s.users.GetByName(ctx, "alice")
	if err != nil || alice == nil {
		t.Fatalf("GetByName() = %v, %v", alice, err)
	}
	id := strconv.FormatInt(alice.ID, 10)

	w := s.do(t, http.MethodGet, "/v1/users", nil)
	if users := decode[[]auth.User](t, w); len(users) != 2 || users[0].UserName != "alice" {
		t.Errorf("list = %+v", users)
	}

	w = s.do(t, http.MethodGet, "/v1/users/"+id, nil)
	if got := decode[auth.User](t, w); !got.IsLogged {
		t.Errorf("info = %+v, want logged in", got)
	}

	w = s.do(t, http.MethodPost, "/v1/users/"+id+"/logout", nil)
	if got := decode[LogoutResponse](t, w); w.Code != http.StatusOK || got.IsLogged {
		t.Fatalf("logout = %d %+v", w.Code, got)
	}

	w = s.do(t, http.MethodPost, "/v1/users/"+id+"/logout", nil)
	if w.Code != http.StatusOK {
		t.Errorf("repeated logout status = %d", w.Code)
	}

	w = s.do(t, http.MethodDelete, "/v1/users/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	expectError(t, s.do(t, http.MethodGet, "/v1/users/"+id, nil), http.StatusNotFound, "user.not_found")
	expectError(t, s.do(t, http.MethodDelete, "/v1/users/"+id, nil), http.StatusNotFound, "user.not_found")
	expectError(t, s.do(t, http.MethodPost, "/v1/users/999/logout", nil), http.StatusNotFound, "user.not_found")
	expectError(t, s.do(t, http.MethodGet, "/v1/users/abc", nil), http.StatusBadRequest, "validation.invalid_id")
	expectError(t, s.do(t, http.MethodGet, "/v1/users/0", nil), http.StatusBadRequest, "validation.invalid_id")
}

// =============================================================================
// Role Endpoint Tests
// =============================================================================

func TestRoleEndpoints(t *testing.T) {
	s := setupTestServer(t, true, RateLimitConfig{})
	ctx := context.Background()

	s.do(t, http.MethodPost, "/v1/auth/register", creds("alice", "secret1"))
	alice, _ := s.users.GetByName(ctx, "alice")
	base := "/v1/users/" + strconv.FormatInt(alice.ID, 10) + "/roles"

	w := s.do(t, http.MethodGet, "/v1/roles", nil)
	roles := decode[[]auth.Role](t, w)
	if len(roles) != 2 || roles[0].Name != "User" || roles[1].Name != "Admin" {
		t.Fatalf("roles = %+v", roles)
	}

	w = s.do(t, http.MethodGet, "/v1/roles/2", nil)
	if got := decode[auth.Role](t, w); got.Name != "Admin" {
		t.Errorf("role 2 = %+v", got)
	}
	expectError(t, s.do(t, http.MethodGet, "/v1/roles/42", nil), http.StatusNotFound, "role.not_found")

	if w := s.do(t, http.MethodPut, base+"/2", nil); w.Code != http.StatusCreated {
		t.Fatalf("assign status = %d: %s", w.Code, w.Body.String())
	}
	if w := s.do(t, http.MethodPut, base+"/1", nil); w.Code != http.StatusCreated {
		t.Fatalf("assign status = %d: %s", w.Code, w.Body.String())
	}
	expectError(t, s.do(t, http.MethodPut, base+"/2", nil), http.StatusConflict, "role.already_exists")
	expectError(t, s.do(t, http.MethodPut, base+"/42", nil), http.StatusNotFound, "role.not_found")
	expectError(t, s.do(t, http.MethodPut, "/v1/users/999/roles/1", nil), http.StatusNotFound, "user.not_found")

	w = s.do(t, http.MethodGet, base, nil)
	held := decode[[]auth.Role](t, w)
	if len(held) != 2 || held[0].ID != 1 || held[1].ID != 2 {
		t.Errorf("user roles = %+v, want ordered by id", held)
	}

	if w := s.do(t, http.MethodDelete, base+"/1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("remove status = %d", w.Code)
	}
	expectError(t, s.do(t, http.MethodDelete, base+"/1", nil), http.StatusNotFound, "role.not_assigned")
	expectError(t, s.do(t, http.MethodGet, "/v1/users/999/roles", nil), http.StatusNotFound, "user.not_found")
}

// =============================================================================
// Migration Endpoint Tests
// =============================================================================

func TestMigrationEndpoints(t *testing.T) {
	s := setupTestServer(t, false, RateLimitConfig{})

	w := s.do(t, http.MethodGet, "/v1/migrations/status", nil)
	status := decode[MigrationStatusResponse](t, w)
	if status.Ready || len(status.Pending) != 3 || len(status.Applied) != 0 {
		t.Fatalf("status before migrate = %+v", status)
	}

	w = s.do(t, http.MethodPost, "/v1/migrations", nil)
	report := decode[MigrateResponse](t, w)
	if w.Code != http.StatusOK || len(report.Applied) != 3 {
		t.Fatalf("migrate = %d %+v", w.Code, report)
	}

	w = s.do(t, http.MethodPost, "/v1/migrations", nil)
	report = decode[MigrateResponse](t, w)
	if len(report.Applied) != 0 || len(report.Skipped) != 3 {
		t.Errorf("second migrate = %+v, want no-op", report)
	}

	w = s.do(t, http.MethodGet, "/v1/migrations/status", nil)
	status = decode[MigrationStatusResponse](t, w)
	if !status.Ready || len(status.Pending) != 0 || len(status.Applied) != 3 {
		t.Errorf("status after migrate = %+v", status)
	}
	for _, tbl := range status.Tables {
		if !tbl.Exists {
			t.Errorf("table %s missing after migrate", tbl.Name)
		}
	}
}

func TestStoreErrorsAreNotLeaked(t *testing.T) {
	// Without migrations the Users table does not exist.
	s := setupTestServer(t, false, RateLimitConfig{})

	w := s.do(t, http.MethodGet, "/v1/users", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("no such table")) {
		t.Errorf("driver message leaked: %s", w.Body.String())
	}
}

// =============================================================================
// Rate Limit Tests
// =============================================================================

func TestAuthRateLimit(t *testing.T) {
	s := setupTestServer(t, true, RateLimitConfig{Enabled: true, AuthRequestsPerMin: 2})

	for i := 0; i < 2; i++ {
		w := s.do(t, http.MethodPost, "/v1/auth/login", creds("alice", "secret1"))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("request %d status = %d", i+1, w.Code)
		}
	}

	w := s.do(t, http.MethodPost, "/v1/auth/login", creds("alice", "secret1"))
	expectError(t, w, http.StatusTooManyRequests, "auth.rate_limited")
	if w.Header().Get("Retry-After") != "60" {
		t.Error("missing Retry-After header")
	}

	if w := s.do(t, http.MethodGet, "/v1/users", nil); w.Code != http.StatusOK {
		t.Errorf("non-auth endpoint throttled: %d", w.Code)
	}
}
