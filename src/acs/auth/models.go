package auth

import (
	"database/sql"
	"time"

	"github.com/bitswalk/acs/src/acs/db"
)

// User is an account. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id" yaml:"id"`
	UserName     string    `json:"username" yaml:"username"`
	PasswordHash string    `json:"-" yaml:"-"`
	IsLogged     bool      `json:"is_logged" yaml:"is_logged"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// Role is a named group users can be associated with
type Role struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// UserRole links one user to one role
type UserRole struct {
	ID         int64     `json:"id" yaml:"id"`
	UserID     int64     `json:"user_id" yaml:"user_id"`
	RoleID     int64     `json:"role_id" yaml:"role_id"`
	AssignedAt time.Time `json:"assigned_at" yaml:"assigned_at"`
}

var userMapping = db.Mapping[User]{
	Table:   "Users",
	Key:     "Id",
	Columns: []string{"Id", "UserName", "HashPassword", "IsLogged", "CreatedAt", "UpdatedAt"},
	Scan: func(s db.Scanner, u *User) error {
		return s.Scan(&u.ID, &u.UserName, &u.PasswordHash, &u.IsLogged, &u.CreatedAt, &u.UpdatedAt)
	},
	Writable: []string{"UserName", "HashPassword", "IsLogged"},
	Values: func(u *User) []any {
		return []any{u.UserName, db.Secret(u.PasswordHash), u.IsLogged}
	},
	ID:    func(u *User) int64 { return u.ID },
	SetID: func(u *User, id int64) { u.ID = id },
	Touch: "UpdatedAt",
}

var roleMapping = db.Mapping[Role]{
	Table:    "Roles",
	Key:      "Id",
	Columns:  []string{"Id", "Name", "Description"},
	Scan:     scanRole,
	Writable: []string{"Name", "Description"},
	Values: func(r *Role) []any {
		return []any{r.Name, sql.NullString{String: r.Description, Valid: r.Description != ""}}
	},
	ID:    func(r *Role) int64 { return r.ID },
	SetID: func(r *Role, id int64) { r.ID = id },
}

func scanRole(s db.Scanner, r *Role) error {
	var desc sql.NullString
	if err := s.Scan(&r.ID, &r.Name, &desc); err != nil {
		return err
	}
	r.Description = desc.String
	return nil
}

var userRoleMapping = db.Mapping[UserRole]{
	Table:   "UserRoles",
	Key:     "Id",
	Columns: []string{"Id", "UserId", "RoleId", "AssignedAt"},
	Scan: func(s db.Scanner, ur *UserRole) error {
		return s.Scan(&ur.ID, &ur.UserID, &ur.RoleID, &ur.AssignedAt)
	},
	Writable: []string{"UserId", "RoleId"},
	Values: func(ur *UserRole) []any {
		return []any{ur.UserID, ur.RoleID}
	},
	ID:    func(ur *UserRole) int64 { return ur.ID },
	SetID: func(ur *UserRole, id int64) { ur.ID = id },
}
