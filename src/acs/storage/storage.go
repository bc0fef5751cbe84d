// Package storage provides the object stores acs keeps backups in.
package storage

import (
	"context"
	"io"
	"time"

	"github.com/bitswalk/acs/src/common/errors"
)

// Backend is an object store addressed by slash-separated keys
type Backend interface {
	// Upload stores reader under key, replacing any existing object
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens the object; the caller closes the reader
	Download(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)

	// Delete removes the object; a missing object is not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, key string) (bool, error)

	// List lists objects whose key starts with prefix, in key order
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Ping checks if the storage is accessible
	Ping(ctx context.Context) error

	// Type returns the storage backend type
	Type() string

	// Location returns a human-readable location description
	Location() string
}

// ObjectInfo holds metadata about a storage object
type ObjectInfo struct {
	Key          string    `json:"key" yaml:"key"`
	Size         int64     `json:"size" yaml:"size"`
	ContentType  string    `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`
}

// Config holds the storage configuration
type Config struct {
	// Type is the storage backend type: "s3" or "local"
	Type string

	// Local storage configuration
	Local LocalConfig

	// S3 storage configuration
	S3 S3Config
}

// DefaultConfig returns a default storage configuration (local filesystem)
func DefaultConfig() Config {
	return Config{
		Type: "local",
		Local: LocalConfig{
			BasePath: "~/.acs/backups",
		},
	}
}

// New creates a storage backend from configuration
func New(cfg Config) (Backend, error) {
	switch cfg.Type {
	case "s3":
		backend, err := NewS3(cfg.S3)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case "local", "":
		backend, err := NewLocal(cfg.Local)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, errors.ErrStorageUnavailable.WithMessagef("unknown storage type %q", cfg.Type)
	}
}
