package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-idle-keeper/internal/utils"
)

// withSessionToken is an HTTP middleware that extracts the session token from
// the incoming request and stores it in the request context under
// [utils.SessionTokenCtxKey].
//
// The session cookie is the primary carrier; the "Authorization: Bearer"
// header is accepted as a fallback for clients that manage the token
// themselves (e.g. the CLI client). A request carrying neither is passed
// through with no token in the context — the handlers decide whether an
// absent token is an error for their endpoint, so that session check can
// answer {ok:false} instead of rejecting outright.
//
// The token value itself is never logged.
func (h *Handler) withSessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.sessionTokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), utils.SessionTokenCtxKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionTokenFromRequest returns the session token carried by the request,
// or "" if the request carries none.
func (h *Handler) sessionTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	token, err := getTokenFromAuthHeader(authHeader)
	if err != nil {
		return ""
	}
	return token
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
