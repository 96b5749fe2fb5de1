package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// sessionRepository is the blob-store-backed implementation of
// [SessionRepository]. Session records live under "session/<token>"; the
// per-identity active pointer lives under "active/<identity>".
//
// The two blobs are deliberately written independently: creating a new
// session saves the record first and then overwrites the pointer, so a crash
// between the two writes leaves at worst an unreachable session record,
// never a pointer to a missing one that would grant access.
type sessionRepository struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided blob store and logger.
func NewSessionRepository(blobs BlobStore, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		blobs:  blobs,
		logger: logger,
	}
}

// Save stores or overwrites the session record keyed by its token.
func (r *sessionRepository) Save(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	blob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	if err := r.blobs.Set(ctx, sessionKey(session.Token), blob); err != nil {
		log.Err(err).Str("func", "*sessionRepository.Save").Msg("error writing session")
		return fmt.Errorf("error writing session: %w", err)
	}

	return nil
}

// Find retrieves the session record for the given token, or
// [ErrNoSessionFound].
func (r *sessionRepository) Find(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	blob, err := r.blobs.Get(ctx, sessionKey(token))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.Session{}, ErrNoSessionFound
		}
		log.Err(err).Str("func", "*sessionRepository.Find").Msg("error reading session")
		return models.Session{}, fmt.Errorf("error reading session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		log.Err(err).Str("func", "*sessionRepository.Find").Msg("error decoding session")
		return models.Session{}, fmt.Errorf("error decoding session: %w", err)
	}

	return session, nil
}

// Delete removes the session record for the given token. Deleting an absent
// record is a no-op, which makes logout idempotent.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if err := r.blobs.Delete(ctx, sessionKey(token)); err != nil {
		log.Err(err).Str("func", "*sessionRepository.Delete").Msg("error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

// SetActive overwrites the identity's active pointer with the given token.
// Records referenced by the previous pointer are left untouched; they become
// superseded and are reconciled lazily on their next validation.
func (r *sessionRepository) SetActive(ctx context.Context, identity, token string, now time.Time) error {
	log := logger.FromContext(ctx)

	pointer := models.ActiveSession{
		Token:         token,
		UpdatedAt:     now,
		SchemaVersion: models.SessionSchemaVersion,
	}

	blob, err := json.Marshal(pointer)
	if err != nil {
		return fmt.Errorf("error encoding active pointer: %w", err)
	}

	if err := r.blobs.Set(ctx, activeKey(identity), blob); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SetActive").Msg("error writing active pointer")
		return fmt.Errorf("error writing active pointer: %w", err)
	}

	return nil
}

// FindActive returns the identity's currently authoritative session token,
// or [ErrNoActiveSession].
func (r *sessionRepository) FindActive(ctx context.Context, identity string) (string, error) {
	log := logger.FromContext(ctx)

	blob, err := r.blobs.Get(ctx, activeKey(identity))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return "", ErrNoActiveSession
		}
		log.Err(err).Str("func", "*sessionRepository.FindActive").Msg("error reading active pointer")
		return "", fmt.Errorf("error reading active pointer: %w", err)
	}

	var pointer models.ActiveSession
	if err := json.Unmarshal(blob, &pointer); err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindActive").Msg("error decoding active pointer")
		return "", fmt.Errorf("error decoding active pointer: %w", err)
	}

	if pointer.Token == "" {
		return "", ErrNoActiveSession
	}

	return pointer.Token, nil
}
