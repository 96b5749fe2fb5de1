package models

import "time"

// CredentialSchemaVersion is the current storage schema version written into
// every persisted [Credential] blob. Blobs with a zero version are legacy
// records and are upgraded at the decode boundary.
const CredentialSchemaVersion = 1

// Credential represents a registered account's password material.
// It contains the salted KDF digest of the password, never the password
// itself. Sensitive fields must never be exposed outside trusted boundaries.
type Credential struct {
	// Identity is the normalized (trimmed, lowercased) unique account
	// identifier. It doubles as the storage key suffix for the record.
	Identity string `json:"identity"`

	// Name is the display name as entered at registration, with the original
	// casing preserved. Non-sensitive, may be shown in UI.
	Name string `json:"name"`

	// Salt is the hex-encoded random salt used for the KDF digest.
	Salt string `json:"salt"`

	// Digest is the hex-encoded scrypt digest of the password.
	// It MUST only ever be compared in constant time.
	Digest string `json:"digest"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`

	// SchemaVersion tags the storage representation of this record.
	SchemaVersion int `json:"schema_version"`
}
