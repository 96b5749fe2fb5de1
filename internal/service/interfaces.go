package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-idle-keeper/models"
)

// AuthService manages account credentials: registration and password
// verification. It owns identity normalization, so every caller sees the
// same mapping from entered usernames to stored identities.
type AuthService interface {
	// Register validates and normalizes the username, hashes the password,
	// stores the credential, and creates the initial player record.
	//
	// Fails with ErrInvalidIdentity, ErrInvalidPassword, or
	// store.ErrIdentityExists.
	Register(ctx context.Context, username, password string, now time.Time) (models.Credential, error)

	// Verify checks the password against the stored credential.
	//
	// Fails with ErrInvalidIdentity, ErrInvalidPassword,
	// store.ErrNoCredentialFound, or ErrWrongPassword. The digest comparison
	// is constant-time.
	Verify(ctx context.Context, username, password string) (models.Credential, error)
}

// UsernameService maintains the public list of recently registered names.
// The list is cosmetic and unauthenticated; it shares the name sanitizer
// with AuthService so pushed names render the same as registered ones.
type UsernameService interface {
	// Push records the name as the newest entry, deduplicating
	// case-insensitively. Fails with ErrInvalidIdentity.
	Push(ctx context.Context, username string, now time.Time) error

	// Recent returns the newest entries, most recent first, capped at the
	// list's exposure limit.
	Recent(ctx context.Context) ([]models.RecentUsername, error)
}

// SessionStatus is the outcome of a session validation.
type SessionStatus int

const (
	// SessionValid — the record exists, is unexpired, and is the identity's
	// active session. The sliding window has been extended as a side effect.
	SessionValid SessionStatus = iota

	// SessionExpired — the record existed but its deadline has passed.
	// The record has been purged as a side effect.
	SessionExpired

	// SessionNotFound — no record exists for the token.
	SessionNotFound

	// SessionSuperseded — the record exists and is unexpired, but a newer
	// login owns the identity's active pointer.
	SessionSuperseded
)

// SessionService manages the session registry: creation, validation with
// sliding expiry, supersession via the per-identity active pointer, and
// revocation.
type SessionService interface {
	// Create issues a fresh session for the identity and makes it the
	// active one, overwriting (not invalidating) any previous pointer.
	Create(ctx context.Context, identity, name string, now time.Time) (models.Session, error)

	// Validate resolves the token to a session and classifies it.
	// A non-nil error indicates a storage failure, not an invalid session.
	Validate(ctx context.Context, token string, now time.Time) (models.Session, SessionStatus, error)

	// Revoke removes the session record if present. Idempotent. The active
	// pointer is left as-is; a dangling pointer resolves to
	// SessionNotFound/SessionSuperseded on later validations, never to a
	// false SessionValid.
	Revoke(ctx context.Context, token string) error
}

// ProgressService advances player records by elapsed wall-clock time.
type ProgressService interface {
	// Accrue deterministically advances the record to now. It is a pure
	// function of the record and the clock: no storage access. The second
	// return reports whether the record changed (at least one whole second
	// elapsed). A returned ErrAccrualCapped means the level-up loop hit its
	// iteration cap and the result was clamped; the record is still usable.
	Accrue(player models.Player, now time.Time) (models.Player, bool, error)

	// Sync loads the identity's record, accrues it to now, and persists it
	// if it changed. Cap anomalies are logged, not surfaced.
	//
	// Fails with store.ErrNoPlayerFound or a storage error.
	Sync(ctx context.Context, identity string, now time.Time) (models.Player, error)
}

// AccessStatus is the outcome of a gated access attempt.
type AccessStatus int

const (
	// AccessAccepted — the session is valid (and freshly extended); the
	// result carries the accrued progress snapshot.
	AccessAccepted AccessStatus = iota

	// AccessForceLogout — the session was superseded by a newer login. The
	// caller must discard its token; the result still carries the accrued
	// progress snapshot.
	AccessForceLogout

	// AccessRejected — the token resolved to no identity (missing, unknown,
	// or expired). No progress was read or written.
	AccessRejected
)

// AccessResult is the outcome of [GateService.Access].
type AccessResult struct {
	Status  AccessStatus
	Reason  string
	Session models.Session
	Player  models.Player
}

// GateService is the composition root for authenticated access: it resolves
// the session, applies offline progress, and decides between acceptance and
// forced logout.
type GateService interface {
	// Access validates the token and, whenever an identity could be
	// resolved (valid or superseded), accrues and persists that identity's
	// progress. A non-nil error indicates a storage failure.
	Access(ctx context.Context, token string, now time.Time) (AccessResult, error)
}
