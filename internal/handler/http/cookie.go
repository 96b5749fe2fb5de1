package http

import (
	"net/http"
	"strings"
	"time"
)

// setSessionCookie issues or refreshes the session cookie. HttpOnly keeps the
// token away from page scripts; SameSite=Lax keeps it off cross-site POSTs.
// The cookie expires together with the session's sliding deadline, so an idle
// browser sheds the cookie at roughly the same time the server would reject it.
func (h *Handler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie tells the client to drop the session cookie.
func (h *Handler) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// requestIsSecure reports whether the request arrived over TLS, either
// directly or via a terminating proxy announcing itself in X-Forwarded-Proto.
func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
