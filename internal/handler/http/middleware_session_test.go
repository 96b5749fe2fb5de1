// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-idle-keeper/internal/service"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenProbe runs a request through withSessionToken and reports the token
// the downstream handler observed.
func tokenProbe(t *testing.T, mutate func(*http.Request)) (string, bool) {
	t.Helper()

	h := newTestHandler(t, &service.Services{})

	var gotToken string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken, gotOK = utils.GetSessionTokenFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/session/check", nil)
	mutate(req)
	rec := httptest.NewRecorder()

	h.withSessionToken(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	return gotToken, gotOK
}

func TestWithSessionToken_FromCookie(t *testing.T) {
	token, ok := tokenProbe(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})
	})

	require.True(t, ok)
	assert.Equal(t, "cookie-token", token)
}

func TestWithSessionToken_FromBearerHeader(t *testing.T) {
	token, ok := tokenProbe(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer header-token")
	})

	require.True(t, ok)
	assert.Equal(t, "header-token", token)
}

// TestWithSessionToken_CookieWinsOverHeader pins the precedence so browser
// clients are unaffected by stray Authorization headers.
func TestWithSessionToken_CookieWinsOverHeader(t *testing.T) {
	token, ok := tokenProbe(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")
	})

	require.True(t, ok)
	assert.Equal(t, "cookie-token", token)
}

func TestWithSessionToken_NoCarrier(t *testing.T) {
	_, ok := tokenProbe(t, func(_ *http.Request) {})

	assert.False(t, ok, "request without token must pass through cleanly")
}

func TestWithSessionToken_MalformedHeaderIgnored(t *testing.T) {
	for _, header := range []string{"Bearer", "Bearer ", ""} {
		_, ok := tokenProbe(t, func(r *http.Request) {
			if header != "" {
				r.Header.Set("Authorization", header)
			}
		})
		assert.False(t, ok, "header %q must yield no token", header)
	}
}

// ─────────────────────────────────────────────
// getTokenFromAuthHeader
// ─────────────────────────────────────────────

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid bearer", header: "Bearer abc123", want: "abc123"},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
