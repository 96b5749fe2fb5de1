package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrIdentityExists is returned when an attempt to register a new
	// identity fails because a credential for the same normalized identity
	// already exists.
	ErrIdentityExists = errors.New("identity already exists")

	// ErrNoCredentialFound is returned when no credential record exists for
	// the requested identity.
	ErrNoCredentialFound = errors.New("no credential was found")

	// ErrNoSessionFound is returned when no session record exists for the
	// presented token.
	ErrNoSessionFound = errors.New("no session was found")

	// ErrNoActiveSession is returned when an identity has no active session
	// pointer stored.
	ErrNoActiveSession = errors.New("no active session pointer was found")

	// ErrNoPlayerFound is returned when no progress record exists for the
	// requested identity.
	ErrNoPlayerFound = errors.New("no player record was found")
)

// Low-level blob-store errors. Repositories wrap these; transports map them
// to 5xx responses.
var (
	// ErrKeyNotFound is returned by BlobStore.Get when the key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrStorageUnavailable is returned (or wrapped) when the backing store
	// cannot be reached or fails mid-operation. The current request is
	// failed outright; no partial mutation is left visible.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrUnknownBackend is returned by NewStorages when the configured
	// storage backend name is not recognised.
	ErrUnknownBackend = errors.New("unknown storage backend")
)
