// Package store implements the persistence layer: an opaque blob store with
// interchangeable backends (memory, postgres, sqlite, redis) and the typed
// repositories layered on top of it.
package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
)

// Storages bundles all repositories over one shared blob store.
type Storages struct {
	Credentials CredentialRepository
	Sessions    SessionRepository
	Players     PlayerRepository
	Usernames   UsernameRepository

	blobs BlobStore
}

// NewStorages constructs the blob store selected by cfg.Backend and wires
// the repositories on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	blobs, err := newBlobStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		Credentials: NewCredentialRepository(blobs, log),
		Sessions:    NewSessionRepository(blobs, log),
		Players:     NewPlayerRepository(blobs, log),
		Usernames:   NewUsernameRepository(blobs, log),
		blobs:       blobs,
	}, nil
}

// Close releases the underlying blob-store resources.
func (s *Storages) Close() error {
	return s.blobs.Close()
}

func newBlobStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (BlobStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryBlobStore(), nil
	case config.BackendPostgres:
		return NewPostgresBlobStore(ctx, cfg.DB, log)
	case config.BackendSQLite:
		return NewSQLiteBlobStore(ctx, cfg.DB, log)
	case config.BackendRedis:
		return NewRedisBlobStore(ctx, cfg.Redis, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
