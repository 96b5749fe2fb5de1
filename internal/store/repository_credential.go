package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// credentialRepository is the blob-store-backed implementation of
// [CredentialRepository]. One JSON blob per identity under "cred/<identity>".
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of storage interactions.
type credentialRepository struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided blob store and logger.
func NewCredentialRepository(blobs BlobStore, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		blobs:  blobs,
		logger: logger,
	}
}

// Create persists a new credential record.
//
// The write uses [BlobStore.SetIfAbsent], so the duplicate check and the
// insert are one atomic step: two concurrent registrations for the same
// identity cannot both succeed.
//
// Error handling:
//   - key already present → [ErrIdentityExists].
//   - Any blob-store failure → wrapped and returned as-is.
func (r *credentialRepository) Create(ctx context.Context, cred models.Credential) error {
	log := logger.FromContext(ctx)

	blob, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("error encoding credential: %w", err)
	}

	written, err := r.blobs.SetIfAbsent(ctx, credentialKey(cred.Identity), blob)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Create").Msg("error writing credential")
		return fmt.Errorf("error writing credential: %w", err)
	}
	if !written {
		return ErrIdentityExists
	}

	return nil
}

// Find retrieves the credential record of the given normalized identity.
//
// Error handling:
//   - absent key → [ErrNoCredentialFound].
//   - Any other blob-store failure → wrapped and returned as-is.
func (r *credentialRepository) Find(ctx context.Context, identity string) (models.Credential, error) {
	log := logger.FromContext(ctx)

	blob, err := r.blobs.Get(ctx, credentialKey(identity))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.Credential{}, ErrNoCredentialFound
		}
		log.Err(err).Str("func", "*credentialRepository.Find").Msg("error reading credential")
		return models.Credential{}, fmt.Errorf("error reading credential: %w", err)
	}

	var cred models.Credential
	if err := json.Unmarshal(blob, &cred); err != nil {
		log.Err(err).Str("func", "*credentialRepository.Find").Msg("error decoding credential")
		return models.Credential{}, fmt.Errorf("error decoding credential: %w", err)
	}

	return cred, nil
}

// Delete removes the credential record of the given normalized identity.
// Idempotent: an absent record is not an error.
func (r *credentialRepository) Delete(ctx context.Context, identity string) error {
	log := logger.FromContext(ctx)

	if err := r.blobs.Delete(ctx, credentialKey(identity)); err != nil {
		log.Err(err).Str("func", "*credentialRepository.Delete").Msg("error deleting credential")
		return fmt.Errorf("error deleting credential: %w", err)
	}

	return nil
}
