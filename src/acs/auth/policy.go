package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/bitswalk/acs/src/common/errors"
)

// Limits that are not configurable
const (
	// MaxUsernameLength matches the width the Users table was designed for
	MaxUsernameLength = 100
	// MaxPasswordBytes is the longest input bcrypt accepts
	MaxPasswordBytes = 72
)

// Policy holds the credential rules applied at registration
type Policy struct {
	MinUsernameLength int
	MinPasswordLength int
}

// DefaultPolicy returns the default credential rules
func DefaultPolicy() Policy {
	return Policy{
		MinUsernameLength: 3,
		MinPasswordLength: 6,
	}
}

// NormalizeUsername trims surrounding whitespace
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// Validate checks a normalized username and a password against the policy.
// Lengths are counted in characters.
func (p Policy) Validate(username, password string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return errors.ErrInvalidUsername.WithMessage("username is required")
	case n < p.MinUsernameLength:
		return errors.ErrInvalidUsername.WithMessagef("username must be at least %d characters", p.MinUsernameLength)
	case n > MaxUsernameLength:
		return errors.ErrInvalidUsername.WithMessagef("username must be at most %d characters", MaxUsernameLength)
	}

	switch {
	case password == "":
		return errors.ErrInvalidPassword.WithMessage("password is required")
	case utf8.RuneCountInString(password) < p.MinPasswordLength:
		return errors.ErrInvalidPassword.WithMessagef("password must be at least %d characters", p.MinPasswordLength)
	case len(password) > MaxPasswordBytes:
		return errors.ErrInvalidPassword.WithMessagef("password must be at most %d bytes", MaxPasswordBytes)
	}

	return nil
}
