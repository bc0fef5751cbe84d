// Package auth implements account registration, credential verification,
// the per-account logged-in flag and role associations.
package auth

import (
	"context"
	"database/sql"

	"github.com/bitswalk/acs/src/acs/db"
	"github.com/bitswalk/acs/src/common/errors"
	"github.com/bitswalk/acs/src/common/logs"
)

// Package-level logger, can be set via SetLogger
var log = logs.NewDiscard()

// SetLogger sets the package-level logger
func SetLogger(l *logs.Logger) {
	log = l
}

// dummyPassword is hashed once per Service to give unknown usernames the
// same verification cost as known ones.
const dummyPassword = "acs-timing-equalizer"

// fallbackDummyHash is a well-formed cost 10 bcrypt hash, used when the
// hasher cannot produce the dummy hash itself.
const fallbackDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service manages accounts.
//
// Login and Logout for the same account are not serialized: concurrent calls
// race on IsLogged and the last write wins.
type Service struct {
	conns  db.ConnFactory
	users  *db.Table[User]
	hasher Hasher
	policy Policy

	dummyHash string
}

// NewService creates an account service. The dummy hash used for unknown
// usernames is computed here so that no lookup pays for it.
func NewService(conns db.ConnFactory, hasher Hasher, policy Policy) *Service {
	s := &Service{
		conns:     conns,
		users:     db.NewTable(conns, userMapping),
		hasher:    hasher,
		policy:    policy,
		dummyHash: fallbackDummyHash,
	}
	if hash, err := hasher.Hash(dummyPassword); err == nil {
		s.dummyHash = hash
	} else {
		log.Warn("Falling back to built-in timing hash", "error", err)
	}
	return s
}

// Users exposes the raw user repository
func (s *Service) Users() db.Repository[User] {
	return s.users
}

// Policy returns the credential rules in force
func (s *Service) Policy() Policy {
	return s.policy
}

// Register creates an account. Invalid input is rejected with a validation
// error before the store is touched. A taken username yields (false, nil).
func (s *Service) Register(ctx context.Context, username, password string) (bool, error) {
	username = NormalizeUsername(username)
	if err := s.policy.Validate(username, password); err != nil {
		return false, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	created := false
	err = db.WithTx(ctx, s.conns, func(tx *sql.Tx) error {
		exists, err := s.users.Exists(ctx, tx, "UserName = ?", username)
		if err != nil || exists {
			return err
		}

		user := &User{UserName: username, PasswordHash: hash}
		if err := s.users.Insert(ctx, tx, user); err != nil {
			if db.IsUniqueViolation(err) {
				return nil
			}
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		log.Error("Failed to register user", "user", username, "error", err)
		return false, wrapQuery(err)
	}

	if created {
		log.Info("User registered", "user", username)
	} else {
		log.Debug("Username already taken", "user", username)
	}
	return created, nil
}

// ValidateCredentials returns the account when password verifies, and nil
// otherwise. An unknown username and a wrong password are indistinguishable:
// both return (nil, nil) after one bcrypt comparison.
//
// Passwords longer than MaxPasswordBytes never verify. bcrypt only reads the
// first MaxPasswordBytes bytes, so any suffix would otherwise be accepted.
func (s *Service) ValidateCredentials(ctx context.Context, username, password string) (*User, error) {
	if len(password) > MaxPasswordBytes {
		s.hasher.Compare(s.dummyHash, password[:MaxPasswordBytes])
		return nil, nil
	}

	username = NormalizeUsername(username)

	var user *User
	if username != "" {
		var err error
		user, err = s.GetByName(ctx, username)
		if err != nil {
			return nil, err
		}
	}

	if user == nil {
		s.hasher.Compare(s.dummyHash, password)
		return nil, nil
	}
	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, nil
	}
	return user, nil
}

// Login verifies the credentials and marks the account logged in.
// Returns nil without writing when verification fails.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	user, err := s.ValidateCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Debug("Login rejected", "user", NormalizeUsername(username))
		return nil, nil
	}

	user.IsLogged = true
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Deleted between verification and update.
		return nil, nil
	}

	log.Info("User logged in", "user", user.UserName, "user_id", user.ID)
	return s.users.GetByID(ctx, user.ID)
}

// Logout clears the logged-in flag. Returns false when the account does not
// exist; logging out an already logged-out account returns true.
func (s *Service) Logout(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return false, err
	}

	user.IsLogged = false
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return false, err
	}
	if updated {
		log.Info("User logged out", "user", user.UserName, "user_id", user.ID)
	}
	return updated, nil
}

// Delete removes the account and all of its role associations in one
// transaction. Returns whether the account row was removed.
func (s *Service) Delete(ctx context.Context, userID int64) (bool, error) {
	deleted := false
	err := db.WithTx(ctx, s.conns, func(tx *sql.Tx) error {
		if _, err := db.Exec(ctx, tx, `DELETE FROM UserRoles WHERE UserId = ?`, userID); err != nil {
			return err
		}
		res, err := db.Exec(ctx, tx, `DELETE FROM Users WHERE Id = ?`, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		log.Error("Failed to delete user", "user_id", userID, "error", err)
		return false, wrapQuery(err)
	}

	if deleted {
		log.Info("User deleted", "user_id", userID)
	}
	return deleted, nil
}

// GetByID returns the account, or nil when absent
func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

// GetByName returns the account, or nil when absent
func (s *Service) GetByName(ctx context.Context, username string) (*User, error) {
	var user *User
	err := db.WithConn(ctx, s.conns, func(conn *sql.Conn) error {
		var err error
		user, err = s.users.FindOne(ctx, conn, "UserName = ?", NormalizeUsername(username))
		return err
	})
	return user, err
}

// List returns every account ordered by ID
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.users.GetAll(ctx)
}

// wrapQuery leaves structured errors alone and wraps raw driver errors
func wrapQuery(err error) error {
	var e *errors.Error
	if errors.As(err, &e) {
		return err
	}
	return errors.ErrDatabaseQuery.WithCause(err)
}
