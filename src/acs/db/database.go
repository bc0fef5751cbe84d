// Package db owns the SQLite store behind acs: opening it with the right
// pragmas, handing out one connection per service call, and the generic
// repository every entity is accessed through.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"sync"

	"github.com/bitswalk/acs/src/common/errors"
	"github.com/bitswalk/acs/src/common/logs"
	"github.com/bitswalk/acs/src/common/paths"
	_ "github.com/mattn/go-sqlite3"
)

// package-level logger, can be set via SetLogger
var log = logs.NewDiscard()

// SetLogger sets the logger for the db package
func SetLogger(l *logs.Logger) {
	log = l
}

// MemoryPath selects a private in-memory store instead of a file
const MemoryPath = ":memory:"

// ConnFactory hands out a dedicated connection. Callers must Close it.
type ConnFactory func(ctx context.Context) (*sql.Conn, error)

// Config holds the database configuration
type Config struct {
	// Path is the SQLite file, or MemoryPath
	Path string
	// BusyTimeout is how long SQLite waits on a locked database, in milliseconds
	BusyTimeout int
}

// DefaultConfig returns a default database configuration
func DefaultConfig() Config {
	return Config{
		Path:        "~/.acs/acs.db",
		BusyTimeout: 5000,
	}
}

// Database wraps the SQLite handle
type Database struct {
	db        *sql.DB
	path      string
	closeOnce sync.Once
}

var memorySeq struct {
	sync.Mutex
	n int
}

// Open opens (creating if needed) the store described by cfg and verifies it
// is reachable. Foreign keys are always enforced.
func Open(ctx context.Context, cfg Config) (*Database, error) {
	path := cfg.Path
	if path != MemoryPath {
		path = paths.Expand(path)
		if err := paths.EnsureDir(path); err != nil {
			return nil, errors.ErrDatabaseConnection.WithCause(err)
		}
	}

	dsn := buildDSN(path, cfg.BusyTimeout)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.ErrDatabaseConnection.WithCause(err)
	}

	// SQLite serializes writers anyway; one connection keeps transactions
	// from tripping over SQLITE_BUSY and keeps in-memory stores alive.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, errors.ErrDatabaseConnection.WithCause(err)
	}

	log.Debug("Database opened", "path", path)

	return &Database{db: sqlDB, path: path}, nil
}

// OpenInMemory opens a fresh, uniquely named in-memory store
func OpenInMemory(ctx context.Context) (*Database, error) {
	return Open(ctx, Config{Path: MemoryPath, BusyTimeout: 5000})
}

func buildDSN(path string, busyTimeout int) string {
	params := url.Values{}
	params.Set("_foreign_keys", "1")
	if busyTimeout > 0 {
		params.Set("_busy_timeout", strconv.Itoa(busyTimeout))
	}

	if path == MemoryPath {
		memorySeq.Lock()
		memorySeq.n++
		name := fmt.Sprintf("acs-mem-%d-%d", os.Getpid(), memorySeq.n)
		memorySeq.Unlock()

		params.Set("mode", "memory")
		params.Set("cache", "shared")
		return "file:" + name + "?" + params.Encode()
	}

	params.Set("_journal_mode", "WAL")
	return "file:" + path + "?" + params.Encode()
}

// Conn is the production ConnFactory
func (d *Database) Conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := d.db.Conn(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseConnection.WithCause(err)
	}
	return conn, nil
}

// DB returns the underlying sql.DB
func (d *Database) DB() *sql.DB {
	return d.db
}

// Path returns the resolved store location
func (d *Database) Path() string {
	return d.path
}

// Close closes the store. Safe to call more than once.
func (d *Database) Close() error {
	var err error
	d.closeOnce.Do(func() {
		err = d.db.Close()
	})
	return err
}
