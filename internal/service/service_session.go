package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// sessionService is the concrete implementation of [SessionService].
//
// It keeps two storage structures per the registry design: immutable-ish
// session records keyed by token, and one active pointer per identity. A new
// login overwrites the pointer and leaves older records in place; those
// records surface as SessionSuperseded the next time someone presents them.
// Nothing is swept eagerly — expiry and supersession are detected at
// validation time.
type sessionService struct {
	sessions store.SessionRepository

	// window is the sliding-expiration window: each successful validation
	// pushes the deadline to now + window.
	window time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a SessionService with the sliding window
// taken from cfg.
func NewSessionService(sessions store.SessionRepository, cfg config.App, logger *logger.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		window:   cfg.SessionWindow,
		logger:   logger,
	}
}

// Create issues a fresh session and makes it the identity's active one.
//
// The record is saved before the pointer is overwritten: if the second write
// fails, the worst case is an unreachable session record, never an active
// pointer referencing a session that was not persisted.
func (s *sessionService) Create(ctx context.Context, identity, name string, now time.Time) (models.Session, error) {
	log := logger.FromContext(ctx)

	token, err := utils.NewSessionToken()
	if err != nil {
		return models.Session{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	session := models.Session{
		Token:         token,
		Identity:      identity,
		Name:          name,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.window),
		SchemaVersion: models.SessionSchemaVersion,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		log.Err(err).Str("identity", identity).Msg("session save failed")
		return models.Session{}, fmt.Errorf("session save failed: %w", err)
	}

	if err := s.sessions.SetActive(ctx, identity, token, now); err != nil {
		log.Err(err).Str("identity", identity).Msg("active pointer update failed")
		return models.Session{}, fmt.Errorf("active pointer update failed: %w", err)
	}

	log.Debug().Str("identity", identity).Time("expires_at", session.ExpiresAt).Msg("session created")

	return session, nil
}

// Validate classifies the presented token.
//
// Outcomes:
//   - SessionNotFound — empty token or no record.
//   - SessionExpired — deadline passed; the record is purged as a side
//     effect (best effort: a failed purge is logged, not surfaced).
//   - SessionSuperseded — record exists and is unexpired, but the
//     identity's active pointer names a different token (or none at all).
//   - SessionValid — everything checks out; the deadline is pushed to
//     now + window and written through before returning.
//
// A non-nil error means storage failed mid-validation; the status is
// meaningless in that case.
func (s *sessionService) Validate(ctx context.Context, token string, now time.Time) (models.Session, SessionStatus, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.Session{}, SessionNotFound, nil
	}

	session, err := s.sessions.Find(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNoSessionFound) {
			return models.Session{}, SessionNotFound, nil
		}
		return models.Session{}, SessionNotFound, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.Expired(now) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			log.Err(err).Str("identity", session.Identity).Msg("expired session purge failed")
		}
		return models.Session{}, SessionExpired, nil
	}

	activeToken, err := s.sessions.FindActive(ctx, session.Identity)
	if err != nil && !errors.Is(err, store.ErrNoActiveSession) {
		return models.Session{}, SessionNotFound, fmt.Errorf("active pointer lookup failed: %w", err)
	}
	if activeToken != session.Token {
		return session, SessionSuperseded, nil
	}

	// sliding expiration: extend from now, not from creation
	session.ExpiresAt = now.Add(s.window)
	if err := s.sessions.Save(ctx, session); err != nil {
		return models.Session{}, SessionNotFound, fmt.Errorf("session extension failed: %w", err)
	}

	return session, SessionValid, nil
}

// Revoke removes the session record if present. The active pointer is not
// touched: if it points at the revoked token it dangles, and any later
// validation of a stale token resolves to SessionNotFound or
// SessionSuperseded, never to a false SessionValid.
func (s *sessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("session revocation failed: %w", err)
	}

	return nil
}
