// Package storage provides the durable key-value blob stores the restaurant
// state is mirrored into. Every backend stores one opaque value per key and
// fully replaces it on write.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no blob exists under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore is a string-keyed store of serialized values.
type BlobStore interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes value under key, replacing any prior content.
	Put(ctx context.Context, key string, value []byte) error
	// Name identifies the backend in logs and health output.
	Name() string
	Close() error
}
