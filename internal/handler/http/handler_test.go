// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/service"
	"github.com/MKhiriev/go-idle-keeper/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mocks for the service layer
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn func(ctx context.Context, username, password string, now time.Time) (models.Credential, error)
	verifyFn   func(ctx context.Context, username, password string) (models.Credential, error)
}

func (m *mockAuthService) Register(ctx context.Context, username, password string, now time.Time) (models.Credential, error) {
	return m.registerFn(ctx, username, password, now)
}

func (m *mockAuthService) Verify(ctx context.Context, username, password string) (models.Credential, error) {
	return m.verifyFn(ctx, username, password)
}

type mockSessionService struct {
	createFn   func(ctx context.Context, identity, name string, now time.Time) (models.Session, error)
	validateFn func(ctx context.Context, token string, now time.Time) (models.Session, service.SessionStatus, error)
	revokeFn   func(ctx context.Context, token string) error
}

func (m *mockSessionService) Create(ctx context.Context, identity, name string, now time.Time) (models.Session, error) {
	return m.createFn(ctx, identity, name, now)
}

func (m *mockSessionService) Validate(ctx context.Context, token string, now time.Time) (models.Session, service.SessionStatus, error) {
	return m.validateFn(ctx, token, now)
}

func (m *mockSessionService) Revoke(ctx context.Context, token string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, token)
	}
	return nil
}

type mockGateService struct {
	accessFn func(ctx context.Context, token string, now time.Time) (service.AccessResult, error)
}

func (m *mockGateService) Access(ctx context.Context, token string, now time.Time) (service.AccessResult, error) {
	return m.accessFn(ctx, token, now)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testCookieName = "idle_session"

func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	cfg := config.App{CookieName: testCookieName, Version: "test"}
	return NewHandler(svcs, cfg, logger.Nop())
}

// decodeBody unmarshals a JSON response body into out.
func decodeBody(t *testing.T, body []byte, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, out))
}

// sessionCookie digs the session cookie out of a recorded response.
func sessionCookie(t *testing.T, result *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range result.Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

// stubSession is a live session fixture shared across handler tests.
func stubSession(expiresAt time.Time) models.Session {
	return models.Session{
		Token:         "aabbccdd",
		Identity:      "alice",
		Name:          "Alice",
		ExpiresAt:     expiresAt,
		SchemaVersion: models.SessionSchemaVersion,
	}
}

// stubPlayer is a progress fixture shared across handler tests.
func stubPlayer() models.Player {
	return models.Player{
		Identity:   "alice",
		Name:       "Alice",
		Level:      3,
		XP:         50,
		XPPerLevel: 100,
		XPPerSec:   1,
	}
}
