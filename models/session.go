package models

import "time"

// SessionSchemaVersion is the current storage schema version written into
// every persisted [Session] blob.
const SessionSchemaVersion = 1

// Session represents a single login session record.
//
// The token is a high-entropy opaque secret: it is the storage key suffix of
// the record and the only proof of ownership a client holds. It must never
// appear in logs or URLs.
//
// A session record existing in storage does not by itself make the session
// authoritative — the per-identity active pointer (see [ActiveSession])
// designates the one token that is currently valid. Records left behind by
// newer logins stay in storage and are resolved lazily as superseded.
type Session struct {
	// Token is the session identifier: 32 random bytes, hex-encoded.
	Token string `json:"token"`

	// Identity is the normalized identity owning this session.
	Identity string `json:"identity"`

	// Name is the owner's display name, denormalized into the session so
	// that session checks do not need a credential lookup.
	Name string `json:"name"`

	// CreatedAt is the timestamp of the login that created the session.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the sliding expiry deadline. It is pushed forward from
	// "now" on every successful validation, not from CreatedAt.
	ExpiresAt time.Time `json:"expires_at"`

	// SchemaVersion tags the storage representation of this record.
	SchemaVersion int `json:"schema_version"`
}

// Expired reports whether the session is expired at the given instant.
// A session whose deadline equals now is already expired.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ActiveSession is the per-identity active pointer: a weak reference to the
// single session token currently considered authoritative for an identity.
// The referenced session may no longer exist or may have expired; lookups
// reconcile the pointer against the session table lazily.
type ActiveSession struct {
	// Token is the currently authoritative session token.
	Token string `json:"active"`

	// UpdatedAt is the timestamp of the last pointer overwrite.
	UpdatedAt time.Time `json:"updated_at"`

	// SchemaVersion tags the storage representation of this record.
	SchemaVersion int `json:"schema_version"`
}
