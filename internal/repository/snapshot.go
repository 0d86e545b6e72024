package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/tableside-pos/internal/storage"
)

// Snapshotter mirrors whole collections into a blob store as JSON, one key
// per collection. Reads happen once at startup; writes replace the blob.
type Snapshotter struct {
	store  storage.BlobStore
	logger *slog.Logger
}

// NewSnapshotter creates a snapshotter over store
func NewSnapshotter(store storage.BlobStore, logger *slog.Logger) *Snapshotter {
	return &Snapshotter{
		store:  store,
		logger: logger,
	}
}

// Load reads the blob at key into a T. When the key is absent, unreadable,
// undecodable, or holds JSON null, defaultValue is returned and the cause is
// logged. Load never fails.
func Load[T any](ctx context.Context, s *Snapshotter, key string, defaultValue T) T {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("no stored snapshot, using default", "key", key, "backend", s.store.Name())
		return defaultValue
	}
	if err != nil {
		s.logger.Error("failed to read snapshot, using default", "key", key, "error", err)
		return defaultValue
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		s.logger.Info("empty stored snapshot, using default", "key", key)
		return defaultValue
	}

	var value T
	if err := json.Unmarshal(trimmed, &value); err != nil {
		s.logger.Error("failed to decode snapshot, using default", "key", key, "error", err)
		return defaultValue
	}
	return value
}

// Save serializes value and writes it under key. Failures are logged and
// returned; callers keep their in-memory state regardless.
func (s *Snapshotter) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to encode snapshot", "key", key, "error", err)
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.store.Put(ctx, key, data); err != nil {
		s.logger.Error("failed to write snapshot", "key", key, "backend", s.store.Name(), "error", err)
		return fmt.Errorf("write %s: %w", key, err)
	}

	s.logger.Debug("snapshot saved", "key", key, "bytes", len(data))
	return nil
}
