package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/bitswalk/acs/src/common/errors"
)

func newTestLocal(t *testing.T) *LocalBackend {
	t.Helper()
	backend, err := NewLocal(LocalConfig{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	return backend
}

func TestLocalBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newTestLocal(t)

	payload := "snapshot-bytes"
	if err := backend.Upload(ctx, "backups/a.db.xz", strings.NewReader(payload), int64(len(payload)), ""); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	exists, err := backend.Exists(ctx, "backups/a.db.xz")
	if err != nil || !exists {
		t.Fatalf("Exists() = %v, %v", exists, err)
	}

	rc, info, err := backend.Download(ctx, "backups/a.db.xz")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != payload {
		t.Errorf("Download() data = %q", data)
	}
	if info.Size != int64(len(payload)) || info.Key != "backups/a.db.xz" {
		t.Errorf("Download() info = %+v", info)
	}

	if err := backend.Delete(ctx, "backups/a.db.xz"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := backend.Delete(ctx, "backups/a.db.xz"); err != nil {
		t.Fatalf("Delete() of missing object error = %v", err)
	}
}

func TestLocalBackend_ListByPrefix(t *testing.T) {
	ctx := context.Background()
	backend := newTestLocal(t)

	for _, key := range []string{"backups/b", "backups/a", "other/c"} {
		if err := backend.Upload(ctx, key, strings.NewReader("x"), 1, ""); err != nil {
			t.Fatal(err)
		}
	}

	objects, err := backend.List(ctx, "backups/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(objects) != 2 || objects[0].Key != "backups/a" || objects[1].Key != "backups/b" {
		t.Fatalf("List() = %+v", objects)
	}
}

func TestLocalBackend_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	backend := newTestLocal(t)

	for _, key := range []string{"../escape", "a/../../escape", ""} {
		err := backend.Upload(ctx, key, strings.NewReader("x"), 1, "")
		if !errors.Is(err, errors.ErrValidationFailed) {
			t.Errorf("Upload(%q) error = %v, want validation failure", key, err)
		}
	}
}

func TestLocalBackend_MissingObject(t *testing.T) {
	ctx := context.Background()
	backend := newTestLocal(t)

	_, _, err := backend.Download(ctx, "nope")
	if !errors.Is(err, errors.ErrStorageNotFound) {
		t.Fatalf("Download() error = %v, want ErrStorageNotFound", err)
	}
}

func TestLocalBackend_SizeMismatch(t *testing.T) {
	ctx := context.Background()
	backend := newTestLocal(t)

	err := backend.Upload(ctx, "short", strings.NewReader("abc"), 10, "")
	if err == nil {
		t.Fatal("expected size mismatch error")
	}
	if exists, _ := backend.Exists(ctx, "short"); exists {
		t.Error("partial object left behind")
	}
}

func TestNew_SelectsBackend(t *testing.T) {
	backend, err := New(Config{Type: "local", Local: LocalConfig{BasePath: t.TempDir()}})
	if err != nil || backend.Type() != "local" {
		t.Fatalf("New(local) = %v, %v", backend, err)
	}

	s3Backend, err := New(Config{Type: "s3", S3: S3Config{Bucket: "acs-backups", Endpoint: "http://localhost:9000"}})
	if err != nil || s3Backend.Type() != "s3" {
		t.Fatalf("New(s3) = %v, %v", s3Backend, err)
	}
	if s3Backend.Location() != "http://localhost:9000/acs-backups" {
		t.Errorf("Location() = %q", s3Backend.Location())
	}

	if _, err := New(Config{Type: "s3"}); !errors.Is(err, errors.ErrValidationFailed) {
		t.Errorf("New(s3 without bucket) error = %v", err)
	}
	if _, err := New(Config{Type: "ftp"}); !errors.Is(err, errors.ErrStorageUnavailable) {
		t.Errorf("New(ftp) error = %v", err)
	}
}
