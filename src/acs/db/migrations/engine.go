// Package migrations applies the ordered schema steps acs depends on and
// records each applied step in the __Migrations ledger.
package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/bitswalk/acs/src/acs/db"
	"github.com/bitswalk/acs/src/common/errors"
	"github.com/bitswalk/acs/src/common/logs"
)

// package-level logger, can be set via SetLogger
var log = logs.NewDiscard()

// SetLogger sets the logger for the migrations package
func SetLogger(l *logs.Logger) {
	log = l
}

// LedgerTable is the name of the applied-migrations ledger
const LedgerTable = "__Migrations"

const createLedgerSQL = `
	CREATE TABLE IF NOT EXISTS __Migrations (
		MigrationId TEXT PRIMARY KEY,
		AppliedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// Migration is one schema step. ID is the ledger key and must never change
// once shipped. Statements run in order inside a single transaction and
// must be safe to re-run.
type Migration struct {
	ID          string
	Description string
	Statements  []string
}

// Record is one ledger row
type Record struct {
	MigrationID string    `json:"migration_id" yaml:"migration_id"`
	AppliedAt   time.Time `json:"applied_at" yaml:"applied_at"`
}

// Report summarizes a Migrate run
type Report struct {
	Applied []string `json:"applied" yaml:"applied"`
	Skipped []string `json:"skipped" yaml:"skipped"`
	// Failed is the ID of the step that stopped the run, if any
	Failed string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Engine applies a fixed, ordered list of migrations
type Engine struct {
	conns db.ConnFactory
	steps []Migration
}

// NewEngine creates an engine over steps, which run in slice order.
// Duplicate or empty IDs are rejected.
func NewEngine(conns db.ConnFactory, steps []Migration) (*Engine, error) {
	seen := make(map[string]struct{}, len(steps))
	for _, m := range steps {
		if m.ID == "" {
			return nil, errors.ErrDuplicateMigration.WithMessage("migration with empty identifier")
		}
		if _, dup := seen[m.ID]; dup {
			return nil, errors.ErrDuplicateMigration.WithMessagef("migration %s declared twice", m.ID)
		}
		seen[m.ID] = struct{}{}
	}

	return &Engine{
		conns: conns,
		steps: append([]Migration(nil), steps...),
	}, nil
}

// Migrate ensures the ledger exists, then applies every step not yet
// recorded, in order. It stops at the first failing step; steps applied
// before it stay applied and recorded.
func (e *Engine) Migrate(ctx context.Context) (*Report, error) {
	report := &Report{Applied: []string{}, Skipped: []string{}}

	if err := e.ensureLedger(ctx); err != nil {
		return report, err
	}

	for _, m := range e.steps {
		applied, err := e.isApplied(ctx, m.ID)
		if err != nil {
			report.Failed = m.ID
			return report, err
		}
		if applied {
			log.Debug("Migration already applied", "id", m.ID)
			report.Skipped = append(report.Skipped, m.ID)
			continue
		}

		log.Info("Applying migration", "id", m.ID, "description", m.Description)
		if err := e.apply(ctx, m); err != nil {
			log.Error("Migration failed", "id", m.ID, "error", err)
			report.Failed = m.ID
			return report, errors.ErrMigrationFailed.
				WithMessagef("migration %s failed", m.ID).
				WithCause(err)
		}
		report.Applied = append(report.Applied, m.ID)
	}

	if len(report.Applied) > 0 {
		log.Info("Migrations complete", "applied", len(report.Applied), "skipped", len(report.Skipped))
	}
	return report, nil
}

func (e *Engine) ensureLedger(ctx context.Context) error {
	return db.WithConn(ctx, e.conns, func(conn *sql.Conn) error {
		if _, err := db.Exec(ctx, conn, createLedgerSQL); err != nil {
			return errors.ErrLedgerUnavailable.WithCause(err)
		}
		return nil
	})
}

func (e *Engine) isApplied(ctx context.Context, id string) (bool, error) {
	var applied bool
	err := db.WithConn(ctx, e.conns, func(conn *sql.Conn) error {
		err := db.QueryRow(ctx, conn,
			`SELECT EXISTS(SELECT 1 FROM __Migrations WHERE MigrationId = ?)`, id).Scan(&applied)
		if err != nil {
			return errors.ErrLedgerUnavailable.WithCause(err)
		}
		return nil
	})
	return applied, err
}

// apply runs the step and its ledger insert in one transaction so a step is
// never recorded without its effect, nor its effect kept without the record.
func (e *Engine) apply(ctx context.Context, m Migration) error {
	return db.WithTx(ctx, e.conns, func(tx *sql.Tx) error {
		for _, stmt := range m.Statements {
			if _, err := db.Exec(ctx, tx, stmt); err != nil {
				return err
			}
		}
		_, err := db.Exec(ctx, tx,
			`INSERT INTO __Migrations (MigrationId, AppliedAt) VALUES (?, ?)`,
			m.ID, time.Now().UTC())
		return err
	})
}

// Applied lists ledger rows in application order. A missing ledger yields
// an empty list.
func (e *Engine) Applied(ctx context.Context) ([]Record, error) {
	records := []Record{}
	err := db.WithConn(ctx, e.conns, func(conn *sql.Conn) error {
		exists, err := db.TableExists(ctx, conn, LedgerTable)
		if err != nil || !exists {
			return err
		}
		records, err = readLedger(ctx, conn)
		return err
	})
	return records, err
}

func readLedger(ctx context.Context, q db.Querier) ([]Record, error) {
	rows, err := db.Query(ctx, q,
		`SELECT MigrationId, AppliedAt FROM __Migrations ORDER BY AppliedAt, MigrationId`)
	if err != nil {
		return nil, errors.ErrLedgerUnavailable.WithCause(err)
	}
	defer rows.Close()

	return db.ScanAll(rows, func(s db.Scanner, r *Record) error {
		return s.Scan(&r.MigrationID, &r.AppliedAt)
	})
}
