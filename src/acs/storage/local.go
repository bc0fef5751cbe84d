package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitswalk/acs/src/common/errors"
	"github.com/bitswalk/acs/src/common/paths"
)

// LocalConfig holds the local filesystem storage configuration
type LocalConfig struct {
	// BasePath is the root directory objects are stored under
	BasePath string
}

// LocalBackend implements storage on the local filesystem
type LocalBackend struct {
	basePath string
}

// NewLocal creates a local filesystem backend, creating BasePath if needed
func NewLocal(cfg LocalConfig) (*LocalBackend, error) {
	basePath := paths.Expand(cfg.BasePath)
	if err := paths.EnsureDirPath(basePath); err != nil {
		return nil, errors.ErrStorageUnavailable.WithCause(err)
	}

	return &LocalBackend{basePath: basePath}, nil
}

// fullPath maps key under basePath, refusing keys that would escape it
func (b *LocalBackend) fullPath(key string) (string, error) {
	rel := filepath.FromSlash(strings.TrimLeft(key, "/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return "", errors.ErrValidationFailed.WithMessagef("invalid storage key %q", key)
	}
	return filepath.Join(b.basePath, rel), nil
}

// Upload writes to a temporary file and renames it into place so readers
// never observe a partial object.
func (b *LocalBackend) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	fullPath, err := b.fullPath(key)
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(fullPath); err != nil {
		return errors.ErrStorageUnavailable.WithCause(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return errors.ErrStorageUnavailable.WithCause(err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	written, err := io.Copy(tmp, reader)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.ErrStorageUnavailable.WithCause(fmt.Errorf("failed to write %s: %w", key, err))
	}
	if size > 0 && written != size {
		return errors.ErrStorageUnavailable.WithCause(
			fmt.Errorf("size mismatch: expected %d bytes, wrote %d bytes", size, written))
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		return errors.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// Download opens a file for reading
func (b *LocalBackend) Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error) {
	fullPath, err := b.fullPath(key)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.ErrStorageNotFound.WithMessagef("object not found: %s", key)
		}
		return nil, nil, errors.ErrStorageUnavailable.WithCause(err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, errors.ErrStorageUnavailable.WithCause(err)
	}

	return file, objectInfo(key, stat), nil
}

// Delete removes a file; a missing file is not an error
func (b *LocalBackend) Delete(ctx context.Context, key string) error {
	fullPath, err := b.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return errors.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// Exists checks if a file exists
func (b *LocalBackend) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := b.fullPath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.ErrStorageUnavailable.WithCause(err)
	}
	return true, nil
}

// List walks basePath and returns files whose key starts with prefix
func (b *LocalBackend) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	prefix = strings.TrimLeft(prefix, "/")
	objects := []ObjectInfo{}

	err := filepath.WalkDir(b.basePath, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}

		rel, err := filepath.Rel(b.basePath, path)
		if err != nil {
			return nil
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		objects = append(objects, *objectInfo(key, info))
		return nil
	})
	if err != nil {
		return nil, errors.ErrStorageUnavailable.WithCause(err)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func objectInfo(key string, stat os.FileInfo) *ObjectInfo {
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &ObjectInfo{
		Key:          key,
		Size:         stat.Size(),
		ContentType:  contentType,
		LastModified: stat.ModTime(),
	}
}

// Ping checks if the storage directory is accessible
func (b *LocalBackend) Ping(ctx context.Context) error {
	if _, err := os.Stat(b.basePath); err != nil {
		return errors.ErrStorageUnavailable.WithCause(err)
	}
	return nil
}

// Type returns the storage backend type
func (b *LocalBackend) Type() string {
	return "local"
}

// Location returns the base path
func (b *LocalBackend) Location() string {
	return b.basePath
}
