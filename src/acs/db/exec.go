package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/bitswalk/acs/src/common/errors"
	"github.com/mattn/go-sqlite3"
)

// Querier is satisfied by *sql.Conn and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Secret is a statement argument that must never appear in logs
type Secret string

// Value implements driver.Valuer
func (s Secret) Value() (driver.Value, error) {
	return string(s), nil
}

// String implements fmt.Stringer
func (Secret) String() string {
	return "***"
}

func trace(query string, args []any) {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = fmt.Sprint(a)
	}
	log.Debug("SQL", "query", compact(query), "args", rendered)
}

func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// Exec runs a traced statement
func Exec(ctx context.Context, q Querier, query string, args ...any) (sql.Result, error) {
	trace(query, args)
	return q.ExecContext(ctx, query, args...)
}

// Query runs a traced query
func Query(ctx context.Context, q Querier, query string, args ...any) (*sql.Rows, error) {
	trace(query, args)
	return q.QueryContext(ctx, query, args...)
}

// QueryRow runs a traced single-row query
func QueryRow(ctx context.Context, q Querier, query string, args ...any) *sql.Row {
	trace(query, args)
	return q.QueryRowContext(ctx, query, args...)
}

// WithConn acquires a connection, runs fn and always releases it
func WithConn(ctx context.Context, conns ConnFactory, fn func(conn *sql.Conn) error) error {
	conn, err := conns(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

// WithTx runs fn inside a transaction on its own connection. The transaction
// commits only if fn returns nil; any error or panic rolls it back.
func WithTx(ctx context.Context, conns ConnFactory, fn func(tx *sql.Tx) error) error {
	return WithConn(ctx, conns, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return errors.ErrDatabaseTransaction.WithCause(err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return errors.ErrDatabaseTransaction.WithCause(err)
		}
		return nil
	})
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint failure
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !stderrors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// TableExists reports whether a table named name exists
func TableExists(ctx context.Context, q Querier, name string) (bool, error) {
	var count int
	err := QueryRow(ctx, q,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	if err != nil {
		return false, errors.ErrDatabaseQuery.WithCause(err)
	}
	return count > 0, nil
}
