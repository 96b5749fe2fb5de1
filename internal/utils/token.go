package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// sessionTokenLen is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const sessionTokenLen = 32

// NewSessionToken returns a cryptographically random, hex-encoded session
// token. The token is an opaque bearer secret: it carries no structure and
// is only meaningful as a key into the session table.
func NewSessionToken() (string, error) {
	token := make([]byte, sessionTokenLen)
	if _, err := rand.Read(token); err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}

	return hex.EncodeToString(token), nil
}
