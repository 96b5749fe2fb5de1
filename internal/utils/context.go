// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password key
// derivation, session token generation, HTTP response writing, and other
// common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionTokenCtxKey is the key used to store the caller's session token in
// the request context. The transport middleware extracts the token from the
// session cookie or the Authorization header and stores it here; handlers
// retrieve it via GetSessionTokenFromContext.
//
// The token is a bearer secret: it must never be logged from the context.
var SessionTokenCtxKey = contextKey("sessionToken")

// GetSessionTokenFromContext retrieves the session token from the context.
//
// Returns the token and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenCtxKey).(string)
	return token, ok
}
