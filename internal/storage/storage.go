// Package storage defines the interface for persisting uploaded objects.
// The local driver writes to a directory on disk; the MinIO driver works
// with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned when a key would resolve outside the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage is the interface for uploading and retrieving objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the URL under which a given key is served.
	PublicURL(key string) string
}
