// Package backup snapshots the acs store into xz-compressed objects and
// restores them.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitswalk/acs/src/acs/db"
	"github.com/bitswalk/acs/src/acs/storage"
	"github.com/bitswalk/acs/src/common/errors"
	"github.com/bitswalk/acs/src/common/logs"
	"github.com/bitswalk/acs/src/common/paths"
	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
)

// package-level logger, can be set via SetLogger
var log = logs.NewDiscard()

// SetLogger sets the logger for the backup package
func SetLogger(l *logs.Logger) {
	log = l
}

// Prefix is the key prefix every backup is stored under
const Prefix = "backups/"

const contentType = "application/x-xz"

// Manager creates snapshots of one store
type Manager struct {
	conns db.ConnFactory
	store storage.Backend
	now   func() time.Time
}

// NewManager creates a backup manager
func NewManager(conns db.ConnFactory, store storage.Backend) *Manager {
	return &Manager{conns: conns, store: store, now: time.Now}
}

// Key builds a unique, time-sortable object key
func Key(t time.Time) string {
	return fmt.Sprintf("%sacs-%s-%s.db.xz", Prefix, t.UTC().Format("20060102T150405Z"), uuid.New().String()[:8])
}

// Create writes a consistent snapshot with VACUUM INTO, compresses it and
// uploads it. The store stays usable while the snapshot is taken.
func (m *Manager) Create(ctx context.Context) (*storage.ObjectInfo, error) {
	tmpDir, err := os.MkdirTemp("", "acs-backup-")
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err)
	}
	defer os.RemoveAll(tmpDir)

	snapshot := filepath.Join(tmpDir, "acs.db")
	err = db.WithConn(ctx, m.conns, func(conn *sql.Conn) error {
		if _, err := db.Exec(ctx, conn, `VACUUM INTO ?`, snapshot); err != nil {
			return errors.ErrDatabaseQuery.WithCause(fmt.Errorf("snapshot failed: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	compressed := snapshot + ".xz"
	size, err := compressFile(snapshot, compressed)
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err)
	}

	f, err := os.Open(compressed)
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err)
	}
	defer f.Close()

	key := Key(m.now())
	if err := m.store.Upload(ctx, key, f, size, contentType); err != nil {
		return nil, err
	}

	log.Info("Backup created", "key", key, "size", size, "location", m.store.Location())
	return &storage.ObjectInfo{
		Key:          key,
		Size:         size,
		ContentType:  contentType,
		LastModified: m.now(),
	}, nil
}

func compressFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	w, err := xz.NewWriter(out)
	if err != nil {
		return 0, fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return 0, fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish xz stream: %w", err)
	}

	stat, err := out.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

// List returns stored backups, oldest first
func List(ctx context.Context, store storage.Backend) ([]storage.ObjectInfo, error) {
	objects, err := store.List(ctx, Prefix)
	if err != nil {
		return nil, err
	}

	backups := make([]storage.ObjectInfo, 0, len(objects))
	for _, o := range objects {
		if strings.HasSuffix(o.Key, ".db.xz") {
			backups = append(backups, o)
		}
	}
	return backups, nil
}

// Restore downloads key, decompresses it and, once the result passes an
// integrity check, moves it to target. An existing target is only replaced
// when force is set. The store at target must not be open.
func Restore(ctx context.Context, store storage.Backend, key, target string, force bool) error {
	target = paths.Expand(target)
	if paths.Exists(target) && !force {
		return errors.ErrValidationFailed.WithMessagef("%s already exists; use --force to overwrite", target)
	}
	if err := paths.EnsureDir(target); err != nil {
		return errors.ErrInternal.WithCause(err)
	}

	rc, _, err := store.Download(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(target), ".restore-*.db")
	if err != nil {
		return errors.ErrInternal.WithCause(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := decompress(rc, tmp); err != nil {
		tmp.Close()
		return errors.ErrInternal.WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.ErrInternal.WithCause(err)
	}

	if err := verify(ctx, tmpPath); err != nil {
		return err
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(target + suffix)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return errors.ErrInternal.WithCause(err)
	}

	log.Info("Backup restored", "key", key, "target", target)
	return nil
}

func decompress(r io.Reader, w io.Writer) error {
	xzReader, err := xz.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create xz reader: %w", err)
	}
	if _, err := io.Copy(w, xzReader); err != nil {
		return fmt.Errorf("failed to decompress backup: %w", err)
	}
	return nil
}

func verify(ctx context.Context, path string) error {
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return errors.ErrDatabaseConnection.WithCause(err)
	}
	defer conn.Close()

	var result string
	if err := conn.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&result); err != nil {
		return errors.ErrDatabaseQuery.WithCause(fmt.Errorf("backup is not a valid store: %w", err))
	}
	if result != "ok" {
		return errors.ErrDatabaseQuery.WithMessagef("backup failed integrity check: %s", result)
	}
	return nil
}
