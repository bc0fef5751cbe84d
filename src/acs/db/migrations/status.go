package migrations

import (
	"context"
	"database/sql"

	"github.com/bitswalk/acs/src/acs/db"
)

// ExpectedTables are the tables a fully migrated store contains
var ExpectedTables = []string{"Users", "Roles", "UserRoles", LedgerTable}

// TableStatus reports whether one expected table exists
type TableStatus struct {
	Name   string `json:"name" yaml:"name"`
	Exists bool   `json:"exists" yaml:"exists"`
}

// Status is the read-only view returned by CheckStatus
type Status struct {
	Tables  []TableStatus `json:"tables" yaml:"tables"`
	Applied []Record      `json:"applied" yaml:"applied"`
	Pending []string      `json:"pending" yaml:"pending"`
}

// Ready reports whether every expected table exists and nothing is pending
func (s *Status) Ready() bool {
	for _, t := range s.Tables {
		if !t.Exists {
			return false
		}
	}
	return len(s.Pending) == 0
}

// CheckStatus reports which expected tables exist and, when the ledger is
// present, which steps are applied and pending. It never writes, so it is
// safe on an empty store.
func (e *Engine) CheckStatus(ctx context.Context) (*Status, error) {
	status := &Status{
		Tables:  make([]TableStatus, 0, len(ExpectedTables)),
		Applied: []Record{},
		Pending: []string{},
	}

	err := db.WithConn(ctx, e.conns, func(conn *sql.Conn) error {
		ledger := false
		for _, name := range ExpectedTables {
			exists, err := db.TableExists(ctx, conn, name)
			if err != nil {
				return err
			}
			status.Tables = append(status.Tables, TableStatus{Name: name, Exists: exists})
			if name == LedgerTable {
				ledger = exists
			}
		}

		if ledger {
			records, err := readLedger(ctx, conn)
			if err != nil {
				return err
			}
			status.Applied = records
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	done := make(map[string]struct{}, len(status.Applied))
	for _, r := range status.Applied {
		done[r.MigrationID] = struct{}{}
	}
	for _, m := range e.steps {
		if _, ok := done[m.ID]; !ok {
			status.Pending = append(status.Pending, m.ID)
		}
	}

	return status, nil
}
