// Package storage holds uploads for the short time it takes to decode them.
// Two backends exist: a local scratch directory and an S3-compatible bucket (MinIO).
// Objects are expected to be deleted by the caller once processed; nothing here expires them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"recipeapi/internal/config"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("object not found")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the transient object store used by the ingestion pipeline.
// Implementations must be safe for concurrent use; keys are chosen by the caller and must be unique.
type Storage interface {
	// Put stores the reader's content under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get opens an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable and writable.
	Ping(ctx context.Context) error
}

// New builds the scratch backend selected by cfg.Backend.
func New(cfg config.ScratchConfig, mc config.MinIOConfig) (Storage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocal(cfg.Dir)
	case "minio":
		return NewMinIO(mc)
	default:
		return nil, fmt.Errorf("unknown scratch backend %q", cfg.Backend)
	}
}
