package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bitswalk/acs/src/common/errors"
)

// Repository is the data access contract every entity is served through.
// Lookups that find nothing return (nil, nil); Update and Delete report
// whether a row was affected.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Scanner is satisfied by *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// Mapping describes how an entity maps onto a table. Table and column names
// are code constants and are interpolated into statements; values never are.
type Mapping[T any] struct {
	// Table is the table name
	Table string
	// Key is the integer primary key column
	Key string
	// Columns are the selected columns, in the order Scan expects them
	Columns []string
	// Scan reads one row into item
	Scan func(s Scanner, item *T) error
	// Writable are the columns written by Create and Update
	Writable []string
	// Values returns item's values in Writable order
	Values func(item *T) []any
	// ID returns item's key
	ID func(item *T) int64
	// SetID stores a generated key on item
	SetID func(item *T, id int64)
	// Touch, if set, is a timestamp column refreshed on every Update
	Touch string
}

// Table implements Repository for one Mapping
type Table[T any] struct {
	conns ConnFactory
	m     Mapping[T]
}

// NewTable creates a Table backed by conns
func NewTable[T any](conns ConnFactory, m Mapping[T]) *Table[T] {
	return &Table[T]{conns: conns, m: m}
}

// Name returns the table name
func (t *Table[T]) Name() string {
	return t.m.Table
}

func (t *Table[T]) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.m.Columns, ", "), t.m.Table)
}

// GetAll returns every row ordered by key
func (t *Table[T]) GetAll(ctx context.Context) ([]T, error) {
	var items []T
	err := WithConn(ctx, t.conns, func(conn *sql.Conn) error {
		var err error
		items, err = t.Find(ctx, conn, "")
		return err
	})
	return items, err
}

// GetByID returns the row with the given key, or nil when absent
func (t *Table[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var item *T
	err := WithConn(ctx, t.conns, func(conn *sql.Conn) error {
		var err error
		item, err = t.Get(ctx, conn, id)
		return err
	})
	return item, err
}

// Create inserts item and reloads it so store defaults are visible
func (t *Table[T]) Create(ctx context.Context, item *T) error {
	return WithConn(ctx, t.conns, func(conn *sql.Conn) error {
		return t.Insert(ctx, conn, item)
	})
}

// Update writes item's writable columns
func (t *Table[T]) Update(ctx context.Context, item *T) (bool, error) {
	sets := make([]string, 0, len(t.m.Writable)+1)
	for _, c := range t.m.Writable {
		sets = append(sets, c+" = ?")
	}
	if t.m.Touch != "" {
		sets = append(sets, t.m.Touch+" = CURRENT_TIMESTAMP")
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", t.m.Table, strings.Join(sets, ", "), t.m.Key)
	args := append(t.m.Values(item), t.m.ID(item))

	var updated bool
	err := WithConn(ctx, t.conns, func(conn *sql.Conn) error {
		var err error
		updated, err = affected(Exec(ctx, conn, query, args...))
		return err
	})
	return updated, err
}

// Delete removes the row with the given key
func (t *Table[T]) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.m.Table, t.m.Key)

	var deleted bool
	err := WithConn(ctx, t.conns, func(conn *sql.Conn) error {
		var err error
		deleted, err = affected(Exec(ctx, conn, query, id))
		return err
	})
	return deleted, err
}

// Get loads one row by key on q
func (t *Table[T]) Get(ctx context.Context, q Querier, id int64) (*T, error) {
	return t.FindOne(ctx, q, t.m.Key+" = ?", id)
}

// FindOne returns the first row matching where, or nil when none does
func (t *Table[T]) FindOne(ctx context.Context, q Querier, where string, args ...any) (*T, error) {
	query := t.selectSQL()
	if where != "" {
		query += " WHERE " + where
	}
	query += " LIMIT 1"

	var item T
	if err := t.m.Scan(QueryRow(ctx, q, query, args...), &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}
	return &item, nil
}

// Find returns every row matching where (all rows when where is empty), ordered by key
func (t *Table[T]) Find(ctx context.Context, q Querier, where string, args ...any) ([]T, error) {
	query := t.selectSQL()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY " + t.m.Key

	rows, err := Query(ctx, q, query, args...)
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}
	defer rows.Close()

	return ScanAll(rows, t.m.Scan)
}

// Exists reports whether any row matches where
func (t *Table[T]) Exists(ctx context.Context, q Querier, where string, args ...any) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s)", t.m.Table, where)

	var exists bool
	if err := QueryRow(ctx, q, query, args...).Scan(&exists); err != nil {
		return false, errors.ErrDatabaseQuery.WithCause(err)
	}
	return exists, nil
}

// Insert writes item on q, stores the generated key and reloads the row.
// Constraint violations are returned unwrapped so callers can inspect them.
func (t *Table[T]) Insert(ctx context.Context, q Querier, item *T) error {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(t.m.Writable)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.m.Table, strings.Join(t.m.Writable, ", "), marks)

	res, err := Exec(ctx, q, query, t.m.Values(item)...)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return errors.ErrDatabaseQuery.WithCause(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	t.m.SetID(item, id)

	stored, err := t.Get(ctx, q, id)
	if err != nil {
		return err
	}
	if stored != nil {
		*item = *stored
	}
	return nil
}

// ScanAll drains rows through scan
func ScanAll[T any](rows *sql.Rows, scan func(s Scanner, item *T) error) ([]T, error) {
	items := []T{}
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, errors.ErrDatabaseQuery.WithCause(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}
	return items, nil
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, errors.ErrDatabaseQuery.WithCause(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.ErrDatabaseQuery.WithCause(err)
	}
	return n > 0, nil
}
