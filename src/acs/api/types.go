package api

// APIInfo represents the root API discovery response
type APIInfo struct {
	Name        string           `json:"name" example:"acs"`
	Description string           `json:"description" example:"Account Console API"`
	Version     string           `json:"version" example:"1.0.0"`
	APIVersions []string         `json:"api_versions" example:"v1"`
	Endpoints   APIInfoEndpoints `json:"endpoints"`
}

// APIInfoEndpoints contains the available API endpoints
type APIInfoEndpoints struct {
	Health     string `json:"health" example:"/v1/health"`
	Version    string `json:"version" example:"/v1/version"`
	Register   string `json:"register" example:"/v1/auth/register"`
	Login      string `json:"login" example:"/v1/auth/login"`
	Users      string `json:"users" example:"/v1/users"`
	Roles      string `json:"roles" example:"/v1/roles"`
	Migrations string `json:"migrations" example:"/v1/migrations"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2026-01-15T10:30:00Z"`
}

// VersionResponse represents the version information response
type VersionResponse struct {
	Version   string `json:"version" example:"1.0.0"`
	BuildDate string `json:"build_date" example:"2026-01-15T10:30:00Z"`
	GitCommit string `json:"git_commit" example:"4f9f297"`
	GoVersion string `json:"go_version" example:"go1.24"`
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"s3cret!"`
}

// RegisterResponse reports a created account
type RegisterResponse struct {
	Username string `json:"username" example:"alice"`
	Created  bool   `json:"created" example:"true"`
}

// LogoutResponse reports a cleared session flag
type LogoutResponse struct {
	ID       int64 `json:"id" example:"1"`
	IsLogged bool  `json:"is_logged" example:"false"`
}

// AssignmentResponse reports a user-role association change
type AssignmentResponse struct {
	UserID   int64 `json:"user_id" example:"1"`
	RoleID   int64 `json:"role_id" example:"2"`
	Assigned bool  `json:"assigned" example:"true"`
}

// MigrationStatusResponse wraps migrations.Status with a readiness flag
type MigrationStatusResponse struct {
	Ready   bool                  `json:"ready" example:"true"`
	Tables  []TableStatusResponse `json:"tables"`
	Applied []AppliedMigration    `json:"applied"`
	Pending []string              `json:"pending"`
}

// TableStatusResponse reports whether one expected table exists
type TableStatusResponse struct {
	Name   string `json:"name" example:"Users"`
	Exists bool   `json:"exists" example:"true"`
}

// AppliedMigration is one ledger record
type AppliedMigration struct {
	MigrationID string `json:"migration_id" example:"001_CreateUsersTable"`
	AppliedAt   string `json:"applied_at" example:"2026-01-15T10:30:00Z"`
}

// MigrateResponse reports one migration run
type MigrateResponse struct {
	Applied []string `json:"applied"`
	Skipped []string `json:"skipped"`
	Failed  string   `json:"failed,omitempty"`
}
