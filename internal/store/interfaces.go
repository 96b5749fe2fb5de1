package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-idle-keeper/models"
)

// BlobStore is the collaborator boundary to the backing key-value store.
//
// Keys are opaque strings; values are opaque byte blobs (JSON-encoded
// records). Implementations must provide per-key atomicity: a Set either
// fully replaces the previous value or leaves it untouched, and SetIfAbsent
// performs its existence check and write as one atomic step. No cross-key
// guarantees are made or relied upon.
type BlobStore interface {
	// Get returns the blob stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the blob under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetIfAbsent stores the blob under key only if the key does not exist
	// yet. Returns true if the write happened, false if the key was taken.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes the blob stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// CredentialRepository persists account credentials, one blob per identity.
type CredentialRepository interface {
	// Create stores a credential for a not-yet-registered identity.
	// Returns [ErrIdentityExists] if the identity already has a credential;
	// the existence check and the write are atomic per identity.
	Create(ctx context.Context, cred models.Credential) error

	// Find returns the credential of the given normalized identity, or
	// [ErrNoCredentialFound].
	Find(ctx context.Context, identity string) (models.Credential, error)

	// Delete removes the identity's credential. Deleting an absent
	// credential is not an error. Used to roll a registration back when a
	// follow-up write fails.
	Delete(ctx context.Context, identity string) error
}

// SessionRepository persists session records and the per-identity active
// pointer. Session records are keyed by token; active pointers by identity.
type SessionRepository interface {
	// Save stores or overwrites a session record.
	Save(ctx context.Context, session models.Session) error

	// Find returns the session record for the given token, or
	// [ErrNoSessionFound].
	Find(ctx context.Context, token string) (models.Session, error)

	// Delete removes the session record for the given token. Idempotent.
	Delete(ctx context.Context, token string) error

	// SetActive overwrites the identity's active pointer with token.
	// Previously pointed-to session records are left in place.
	SetActive(ctx context.Context, identity, token string, now time.Time) error

	// FindActive returns the identity's currently authoritative token, or
	// [ErrNoActiveSession]. The referenced session record may no longer
	// exist; callers reconcile against Find.
	FindActive(ctx context.Context, identity string) (string, error)
}

// UsernameRepository persists the public recently-registered-names list as
// one shared blob. Unlike the other repositories there is no per-identity
// key: concurrent pushes race on the single record and the last writer wins,
// which is acceptable for a cosmetic list.
type UsernameRepository interface {
	// Push records name as the newest entry, removing any existing entry for
	// the same name regardless of case.
	Push(ctx context.Context, name string, now time.Time) error

	// Recent returns up to limit entries, newest first. An empty or absent
	// list is not an error.
	Recent(ctx context.Context, limit int) ([]models.RecentUsername, error)
}

// PlayerRepository persists progress records, one blob per identity.
type PlayerRepository interface {
	// Save stores or overwrites a player record.
	Save(ctx context.Context, player models.Player) error

	// Find returns the player record of the given normalized identity, or
	// [ErrNoPlayerFound]. Legacy blobs are upgraded to the current schema
	// before being returned.
	Find(ctx context.Context, identity string) (models.Player, error)
}
