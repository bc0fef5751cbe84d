package errors

import "net/http"

// Codes shared across domains
const (
	CodeNotFound       Code = "not_found"
	CodeAlreadyExists  Code = "already_exists"
	CodeInvalidRequest Code = "invalid_request"
	CodeUnauthorized   Code = "unauthorized"
	CodeInternal       Code = "internal_error"
	CodeUnavailable    Code = "unavailable"
)

// ============================================================================
// Authentication Errors
// ============================================================================

var (
	// ErrInvalidCredentials is returned when a username/password pair does not verify.
	// It deliberately does not say which half was wrong.
	ErrInvalidCredentials = New(DomainAuth, "invalid_credentials", http.StatusUnauthorized,
		"Invalid credentials")

	// ErrHashFailed is returned when the password hasher cannot produce a hash
	ErrHashFailed = New(DomainAuth, "hash_failed", http.StatusInternalServerError,
		"Failed to hash password")

	// ErrRateLimited is returned when a client exceeds the auth request budget
	ErrRateLimited = New(DomainAuth, "rate_limited", http.StatusTooManyRequests,
		"Too many requests, try again later")
)

// ============================================================================
// User Errors
// ============================================================================

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = New(DomainUser, CodeNotFound, http.StatusNotFound,
		"User not found")

	// ErrUserAlreadyExists is returned when a username is already taken
	ErrUserAlreadyExists = New(DomainUser, CodeAlreadyExists, http.StatusConflict,
		"User already exists")
)

// ============================================================================
// Role Errors
// ============================================================================

var (
	// ErrRoleNotFound is returned when a role cannot be found
	ErrRoleNotFound = New(DomainRole, CodeNotFound, http.StatusNotFound,
		"Role not found")

	// ErrRoleAlreadyAssigned is returned by the API when an assignment was a no-op
	ErrRoleAlreadyAssigned = New(DomainRole, CodeAlreadyExists, http.StatusConflict,
		"Role already assigned")

	// ErrRoleNotAssigned is returned by the API when there was no assignment to remove
	ErrRoleNotAssigned = New(DomainRole, "not_assigned", http.StatusNotFound,
		"Role not assigned")
)

// ============================================================================
// Migration Errors
// ============================================================================

var (
	// ErrMigrationFailed is returned when a migration step fails to apply
	ErrMigrationFailed = New(DomainMigration, "failed", http.StatusInternalServerError,
		"Migration failed")

	// ErrLedgerUnavailable is returned when the migration ledger cannot be created or read
	ErrLedgerUnavailable = New(DomainMigration, "ledger_unavailable", http.StatusInternalServerError,
		"Migration ledger unavailable")

	// ErrDuplicateMigration is returned when two steps share an identifier
	ErrDuplicateMigration = New(DomainMigration, "duplicate_id", http.StatusInternalServerError,
		"Duplicate migration identifier")
)

// ============================================================================
// Database Errors
// ============================================================================

var (
	// ErrDatabaseConnection is returned when a connection cannot be acquired
	ErrDatabaseConnection = New(DomainDatabase, "connection_failed", http.StatusServiceUnavailable,
		"Database connection failed")

	// ErrDatabaseQuery is returned when a statement fails
	ErrDatabaseQuery = New(DomainDatabase, "query_failed", http.StatusInternalServerError,
		"Database query failed")

	// ErrDatabaseTransaction is returned when a transaction cannot begin or commit
	ErrDatabaseTransaction = New(DomainDatabase, "transaction_failed", http.StatusInternalServerError,
		"Database transaction failed")
)

// ============================================================================
// Storage Errors
// ============================================================================

var (
	// ErrStorageNotFound is returned when a stored object does not exist
	ErrStorageNotFound = New(DomainStorage, CodeNotFound, http.StatusNotFound,
		"Object not found in storage")

	// ErrStorageUnavailable is returned when the storage backend cannot be reached
	ErrStorageUnavailable = New(DomainStorage, CodeUnavailable, http.StatusServiceUnavailable,
		"Storage backend unavailable")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	// ErrValidationFailed is returned when input is rejected before reaching the store
	ErrValidationFailed = New(DomainValidation, "validation_failed", http.StatusBadRequest,
		"Validation failed")

	// ErrInvalidUsername is returned when a username is empty or too short
	ErrInvalidUsername = New(DomainValidation, "invalid_username", http.StatusBadRequest,
		"Invalid username")

	// ErrInvalidPassword is returned when a password is empty or too short
	ErrInvalidPassword = New(DomainValidation, "invalid_password", http.StatusBadRequest,
		"Invalid password")

	// ErrInvalidJSON is returned when a request body cannot be decoded
	ErrInvalidJSON = New(DomainValidation, "invalid_json", http.StatusBadRequest,
		"Invalid JSON")

	// ErrInvalidID is returned when an identifier is not a positive integer
	ErrInvalidID = New(DomainValidation, "invalid_id", http.StatusBadRequest,
		"Invalid identifier")
)

// ============================================================================
// Internal Errors
// ============================================================================

var (
	// ErrInternal is a generic internal error
	ErrInternal = New(DomainInternal, CodeInternal, http.StatusInternalServerError,
		"Internal server error")
)
