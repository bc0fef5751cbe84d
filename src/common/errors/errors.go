// Package errors provides the structured error type shared by every acs package.
// An Error carries a domain, a code and a human-readable message, optionally
// wraps the store or driver failure that caused it, and maps onto an HTTP
// status for the API surface.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies an error within its domain
type Code string

// Domain groups related errors (e.g. "user", "migration")
type Domain string

// Error domains
const (
	DomainAuth       Domain = "auth"
	DomainUser       Domain = "user"
	DomainRole       Domain = "role"
	DomainMigration  Domain = "migration"
	DomainDatabase   Domain = "database"
	DomainStorage    Domain = "storage"
	DomainValidation Domain = "validation"
	DomainInternal   Domain = "internal"
)

// Error is a structured error with domain, code and HTTP status
type Error struct {
	Domain     Domain `json:"domain"`
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`

	cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Code, e.Message)
}

// Unwrap returns the wrapped cause
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same domain and code.
// Messages and causes are ignored so that WithCause/WithMessage copies
// still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Domain == t.Domain && e.Code == t.Code
}

// WithCause returns a copy of e wrapping cause
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Domain:     e.Domain,
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		cause:      cause,
	}
}

// WithMessage returns a copy of e with a different message
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Domain:     e.Domain,
		Code:       e.Code,
		Message:    message,
		HTTPStatus: e.HTTPStatus,
		cause:      e.cause,
	}
}

// WithMessagef returns a copy of e with a formatted message
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// New creates a new Error
func New(domain Domain, code Code, httpStatus int, message string) *Error {
	return &Error{
		Domain:     domain,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// GetHTTPStatus returns the HTTP status for err, or 500 when err is not an *Error
func GetHTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus
	}
	return 500
}

// GetCode returns the code of err, or an empty code when err is not an *Error
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetDomain returns the domain of err, or an empty domain when err is not an *Error
func GetDomain(err error) Domain {
	var e *Error
	if errors.As(err, &e) {
		return e.Domain
	}
	return ""
}

// Is delegates to the standard library errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As delegates to the standard library errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}
