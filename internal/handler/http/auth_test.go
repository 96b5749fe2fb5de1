// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/service"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, username, password string, _ time.Time) (models.Credential, error) {
			assert.Equal(t, "Alice", username)
			assert.Equal(t, "secret123", password)
			return models.Credential{Identity: "alice", Name: "Alice"}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"username":"Alice","password":"secret123"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.OKResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.OK)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid name", err: service.ErrInvalidIdentity, wantStatus: http.StatusBadRequest},
		{name: "invalid password", err: service.ErrInvalidPassword, wantStatus: http.StatusBadRequest},
		{name: "name taken", err: store.ErrIdentityExists, wantStatus: http.StatusConflict},
		{name: "storage down", err: store.ErrStorageUnavailable, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				registerFn: func(_ context.Context, _, _ string, _ time.Time) (models.Credential, error) {
					return models.Credential{}, tt.err
				},
			}
			h := newTestHandler(t, &service.Services{AuthService: auth})

			req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"username":"x","password":"y"}`))
			rec := httptest.NewRecorder()

			h.register(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			var resp models.ErrorResponse
			decodeBody(t, rec.Body.Bytes(), &resp)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	session := stubSession(expiresAt)

	auth := &mockAuthService{
		verifyFn: func(_ context.Context, username, password string) (models.Credential, error) {
			assert.Equal(t, "Alice", username)
			return models.Credential{Identity: "alice", Name: "Alice"}, nil
		},
	}
	sessions := &mockSessionService{
		createFn: func(_ context.Context, identity, name string, _ time.Time) (models.Session, error) {
			assert.Equal(t, "alice", identity)
			assert.Equal(t, "Alice", name)
			return session, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth, SessionService: sessions})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"username":"Alice","password":"secret123"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	decodeBody(t, rec.Body.Bytes(), &resp)
	assert.True(t, resp.OK)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, session.Token, resp.Token)

	cookie := sessionCookie(t, rec.Result())
	require.NotNil(t, cookie, "login must set the session cookie")
	assert.Equal(t, session.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure, "plain-http request must not mark the cookie Secure")
	assert.WithinDuration(t, expiresAt, cookie.Expires, time.Second)
}

// TestLogin_SecureCookieBehindTLSProxy verifies that a forwarded HTTPS
// request gets a Secure cookie.
func TestLogin_SecureCookieBehindTLSProxy(t *testing.T) {
	auth := &mockAuthService{
		verifyFn: func(_ context.Context, _, _ string) (models.Credential, error) {
			return models.Credential{Identity: "alice", Name: "Alice"}, nil
		},
	}
	sessions := &mockSessionService{
		createFn: func(_ context.Context, _, _ string, _ time.Time) (models.Session, error) {
			return stubSession(time.Now().Add(time.Hour)), nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth, SessionService: sessions})

	req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"username":"Alice","password":"secret123"}`))
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()

	h.login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec.Result())
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid data", err: service.ErrInvalidIdentity, wantStatus: http.StatusBadRequest},
		{name: "unknown user", err: store.ErrNoCredentialFound, wantStatus: http.StatusNotFound},
		{name: "wrong password", err: service.ErrWrongPassword, wantStatus: http.StatusUnauthorized},
		{name: "storage down", err: store.ErrStorageUnavailable, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthService{
				verifyFn: func(_ context.Context, _, _ string) (models.Credential, error) {
					return models.Credential{}, tt.err
				},
			}
			h := newTestHandler(t, &service.Services{AuthService: auth})

			req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"username":"x","password":"y"}`))
			rec := httptest.NewRecorder()

			h.login(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, sessionCookie(t, rec.Result()), "failed login must not set a cookie")
		})
	}
}
