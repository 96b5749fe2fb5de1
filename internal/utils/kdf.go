package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for password digests. N/r/p follow the interactive-login
// recommendation of the scrypt authors; the digest length matches the salt
// and key sizes used by the accounts already in storage, so parameters can
// only be changed together with a schema version bump.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64

	saltLen = 16
)

// NewSalt returns a fresh hex-encoded random salt for password hashing.
func NewSalt() (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	return hex.EncodeToString(salt), nil
}

// DerivePassword computes the hex-encoded scrypt digest of password under the
// given hex-encoded salt.
//
// Returns an error if the salt is not valid hex or if the scrypt parameters
// are rejected by the underlying implementation.
func DerivePassword(password, saltHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("error decoding salt: %w", err)
	}

	digest, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("error deriving password digest: %w", err)
	}

	return hex.EncodeToString(digest), nil
}

// VerifyPassword derives the digest of the candidate password under saltHex
// and compares it with the stored digest in constant time.
//
// The comparison never short-circuits on byte content, so response timing
// does not reveal how much of the digest matched.
func VerifyPassword(password, saltHex, digestHex string) (bool, error) {
	candidate, err := DerivePassword(password, saltHex)
	if err != nil {
		return false, err
	}

	stored, err := hex.DecodeString(digestHex)
	if err != nil {
		return false, fmt.Errorf("error decoding stored digest: %w", err)
	}

	candidateBytes, err := hex.DecodeString(candidate)
	if err != nil {
		return false, fmt.Errorf("error decoding candidate digest: %w", err)
	}

	return subtle.ConstantTimeCompare(candidateBytes, stored) == 1, nil
}
