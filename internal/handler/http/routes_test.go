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
	"github.com/MKhiriev/go-idle-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRoutes_RegisterThroughRouter sends a registration through the full
// middleware chain and checks the trace header comes back.
func TestRoutes_RegisterThroughRouter(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _, _ string, _ time.Time) (models.Credential, error) {
			return models.Credential{Identity: "alice", Name: "Alice"}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"username":"Alice","password":"secret123"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

// TestRoutes_SessionCheckCarriesCookieToken verifies that the cookie token
// reaches the gate through the router's middleware chain.
func TestRoutes_SessionCheckCarriesCookieToken(t *testing.T) {
	var seenToken string
	gate := &mockGateService{
		accessFn: func(_ context.Context, token string, _ time.Time) (service.AccessResult, error) {
			seenToken = token
			return service.AccessResult{Status: service.AccessRejected, Reason: service.ReasonNoSession}, nil
		},
	}
	h := newTestHandler(t, &service.Services{GateService: gate})
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/session/check", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cookie-token"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie-token", seenToken)
}

// TestRoutes_UsernamesBothMethods verifies the public names list is routed
// for both reading and pushing, without a session.
func TestRoutes_UsernamesBothMethods(t *testing.T) {
	usernames := &mockUsernameService{
		recentFn: func(_ context.Context) ([]models.RecentUsername, error) {
			return []models.RecentUsername{{Name: "Alice"}}, nil
		},
	}
	h := newTestHandler(t, &service.Services{UsernameService: usernames})
	router := h.Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/usernames", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/usernames", strings.NewReader(`{"username":"Bob"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
}

// TestRoutes_WrongMethodHidden verifies that an unsupported method on a known
// path answers 404, not 405.
func TestRoutes_WrongMethodHidden(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/user/register", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_UnknownPath(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/unknown", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_Version(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Body.String())
}

// TestRoutes_TraceIDEchoed verifies an inbound trace ID is reused instead of
// replaced.
func TestRoutes_TraceIDEchoed(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get(traceIDHeader))
}
