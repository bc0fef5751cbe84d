package auth

import (
	"context"
	"database/sql"

	"github.com/bitswalk/acs/src/acs/db"
	"github.com/bitswalk/acs/src/common/errors"
)

// RoleService manages roles and user-role associations. A pair is held at
// most once; this is enforced by the existence check in AssignRole rather
// than by a store constraint.
type RoleService struct {
	conns     db.ConnFactory
	roles     *db.Table[Role]
	userRoles *db.Table[UserRole]
	users     *db.Table[User]
}

// NewRoleService creates a role service
func NewRoleService(conns db.ConnFactory) *RoleService {
	return &RoleService{
		conns:     conns,
		roles:     db.NewTable(conns, roleMapping),
		userRoles: db.NewTable(conns, userRoleMapping),
		users:     db.NewTable(conns, userMapping),
	}
}

// Roles exposes role CRUD
func (s *RoleService) Roles() db.Repository[Role] {
	return s.roles
}

// Associations exposes raw user-role rows
func (s *RoleService) Associations() db.Repository[UserRole] {
	return s.userRoles
}

// GetByName returns the role, or nil when absent
func (s *RoleService) GetByName(ctx context.Context, name string) (*Role, error) {
	var role *Role
	err := db.WithConn(ctx, s.conns, func(conn *sql.Conn) error {
		var err error
		role, err = s.roles.FindOne(ctx, conn, "Name = ?", name)
		return err
	})
	return role, err
}

// AssignRole links the user to the role. Returns false without writing
// when the pair already exists. Unknown users or roles are reported as
// not-found errors.
func (s *RoleService) AssignRole(ctx context.Context, userID, roleID int64) (bool, error) {
	assigned := false
	err := db.WithTx(ctx, s.conns, func(tx *sql.Tx) error {
		user, err := s.users.Get(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}
		role, err := s.roles.Get(ctx, tx, roleID)
		if err != nil {
			return err
		}
		if role == nil {
			return errors.ErrRoleNotFound
		}

		held, err := s.userRoles.Exists(ctx, tx, "UserId = ? AND RoleId = ?", userID, roleID)
		if err != nil || held {
			return err
		}

		if err := s.userRoles.Insert(ctx, tx, &UserRole{UserID: userID, RoleID: roleID}); err != nil {
			return wrapQuery(err)
		}
		assigned = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if assigned {
		log.Info("Role assigned", "user_id", userID, "role_id", roleID)
	}
	return assigned, nil
}

// RemoveRole deletes the association if present and reports whether it did
func (s *RoleService) RemoveRole(ctx context.Context, userID, roleID int64) (bool, error) {
	removed := false
	err := db.WithConn(ctx, s.conns, func(conn *sql.Conn) error {
		res, err := db.Exec(ctx, conn, `DELETE FROM UserRoles WHERE UserId = ? AND RoleId = ?`, userID, roleID)
		if err != nil {
			return errors.ErrDatabaseQuery.WithCause(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return errors.ErrDatabaseQuery.WithCause(err)
		}
		removed = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		log.Info("Role removed", "user_id", userID, "role_id", roleID)
	}
	return removed, nil
}

// RolesForUser returns the user's roles ordered by role ID. An unknown user
// has no roles.
func (s *RoleService) RolesForUser(ctx context.Context, userID int64) ([]Role, error) {
	roles := []Role{}
	err := db.WithConn(ctx, s.conns, func(conn *sql.Conn) error {
		rows, err := db.Query(ctx, conn, `
			SELECT r.Id, r.Name, r.Description
			FROM Roles r
			INNER JOIN UserRoles ur ON ur.RoleId = r.Id
			WHERE ur.UserId = ?
			ORDER BY r.Id`, userID)
		if err != nil {
			return errors.ErrDatabaseQuery.WithCause(err)
		}
		defer rows.Close()

		roles, err = db.ScanAll(rows, scanRole)
		return err
	})
	return roles, err
}

// ByUser lists association rows for a user
func (s *RoleService) ByUser(ctx context.Context, userID int64) ([]UserRole, error) {
	return s.findAssociations(ctx, "UserId = ?", userID)
}

// ByRole lists association rows for a role
func (s *RoleService) ByRole(ctx context.Context, roleID int64) ([]UserRole, error) {
	return s.findAssociations(ctx, "RoleId = ?", roleID)
}

func (s *RoleService) findAssociations(ctx context.Context, where string, id int64) ([]UserRole, error) {
	var out []UserRole
	err := db.WithConn(ctx, s.conns, func(conn *sql.Conn) error {
		var err error
		out, err = s.userRoles.Find(ctx, conn, where, id)
		return err
	})
	return out, err
}
