// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/MKhiriev/go-idle-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.CredentialRepository
// ─────────────────────────────────────────────

type mockCredentialRepository struct {
	createFn func(ctx context.Context, cred models.Credential) error
	findFn   func(ctx context.Context, identity string) (models.Credential, error)
	deleteFn func(ctx context.Context, identity string) error
}

func (m *mockCredentialRepository) Create(ctx context.Context, cred models.Credential) error {
	if m.createFn != nil {
		return m.createFn(ctx, cred)
	}
	return nil
}

func (m *mockCredentialRepository) Find(ctx context.Context, identity string) (models.Credential, error) {
	if m.findFn != nil {
		return m.findFn(ctx, identity)
	}
	return models.Credential{}, nil
}

func (m *mockCredentialRepository) Delete(ctx context.Context, identity string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, identity)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestAuthService(credentials store.CredentialRepository, players store.PlayerRepository) AuthService {
	cfg := config.App{XPPerLevel: 100, XPPerSec: 1}
	return NewAuthService(credentials, players, cfg, logger.Nop())
}

// storedCredential builds a real credential the way Register would, so Verify
// tests exercise the actual scrypt digests rather than canned values.
func storedCredential(t *testing.T, name, password string) models.Credential {
	t.Helper()

	salt, err := utils.NewSalt()
	require.NoError(t, err)
	digest, err := utils.DerivePassword(password, salt)
	require.NoError(t, err)

	return models.Credential{
		Identity:      "alice",
		Name:          name,
		Salt:          salt,
		Digest:        digest,
		SchemaVersion: models.CredentialSchemaVersion,
	}
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	var createdCred *models.Credential
	var seededPlayer *models.Player

	credentials := &mockCredentialRepository{
		createFn: func(_ context.Context, cred models.Credential) error {
			createdCred = &cred
			return nil
		},
	}
	players := &mockPlayerRepository{
		saveFn: func(_ context.Context, player models.Player) error {
			seededPlayer = &player
			return nil
		},
	}
	svc := newTestAuthService(credentials, players)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cred, err := svc.Register(context.Background(), "Alice", "secret123", now)

	require.NoError(t, err)
	require.NotNil(t, createdCred)
	assert.Equal(t, *createdCred, cred)

	assert.Equal(t, "alice", cred.Identity, "identity must be the lowercased name")
	assert.Equal(t, "Alice", cred.Name, "display name keeps its case")
	assert.Len(t, cred.Salt, 32, "16 random bytes, hex-encoded")
	assert.Len(t, cred.Digest, 128, "64-byte scrypt digest, hex-encoded")
	assert.NotContains(t, cred.Digest, "secret123")
	assert.Equal(t, now, cred.CreatedAt)

	require.NotNil(t, seededPlayer, "registration must seed the progress record")
	assert.Equal(t, "alice", seededPlayer.Identity)
	assert.Equal(t, int64(1), seededPlayer.Level)
	assert.Equal(t, float64(0), seededPlayer.XP)
	assert.Equal(t, float64(100), seededPlayer.XPPerLevel)
	assert.Equal(t, float64(1), seededPlayer.XPPerSec)
	assert.Equal(t, now, seededPlayer.LastXPAt)
}

// TestAuthService_Register_CaseInsensitiveCollision verifies that "Alice" and
// " alice " normalize to the same identity, so the second registration hits
// the repository's duplicate check.
func TestAuthService_Register_CaseInsensitiveCollision(t *testing.T) {
	taken := map[string]bool{}
	credentials := &mockCredentialRepository{
		createFn: func(_ context.Context, cred models.Credential) error {
			if taken[cred.Identity] {
				return store.ErrIdentityExists
			}
			taken[cred.Identity] = true
			return nil
		},
	}
	svc := newTestAuthService(credentials, &mockPlayerRepository{})

	_, err := svc.Register(context.Background(), "Alice", "secret123", time.Now())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "  alice  ", "other-secret", time.Now())
	require.ErrorIs(t, err, store.ErrIdentityExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "name too short", username: "ab", password: "secret123", wantErr: ErrInvalidIdentity},
		{name: "name only stripped chars", username: "@#$%", password: "secret123", wantErr: ErrInvalidIdentity},
		{name: "name too long", username: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaab", password: "secret123", wantErr: ErrInvalidIdentity},
		{name: "password too short", username: "alice", password: "12345", wantErr: ErrInvalidPassword},
	}

	svc := newTestAuthService(&mockCredentialRepository{
		createFn: func(_ context.Context, _ models.Credential) error {
			t.Fatal("validation failures must not reach storage")
			return nil
		},
	}, &mockPlayerRepository{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password, time.Now())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestAuthService_Register_PlayerWriteFailureRollsBackCredential verifies
// that a failed initial player write deletes the just-created credential, so
// no identity is left registered without a progress record.
func TestAuthService_Register_PlayerWriteFailureRollsBackCredential(t *testing.T) {
	var deletedIdentity string
	credentials := &mockCredentialRepository{
		deleteFn: func(_ context.Context, identity string) error {
			deletedIdentity = identity
			return nil
		},
	}
	players := &mockPlayerRepository{
		saveFn: func(_ context.Context, _ models.Player) error {
			return errStorage
		},
	}
	svc := newTestAuthService(credentials, players)

	_, err := svc.Register(context.Background(), "Alice", "secret123", time.Now())

	require.ErrorIs(t, err, errStorage)
	assert.Equal(t, "alice", deletedIdentity, "credential must be rolled back")
}

// TestAuthService_Register_SanitizesName verifies that disallowed characters
// are stripped before the name is stored.
func TestAuthService_Register_SanitizesName(t *testing.T) {
	credentials := &mockCredentialRepository{}
	svc := newTestAuthService(credentials, &mockPlayerRepository{})

	cred, err := svc.Register(context.Background(), "Al<ice>!", "secret123", time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Alice", cred.Name)
	assert.Equal(t, "alice", cred.Identity)
}

// ─────────────────────────────────────────────
// Verify
// ─────────────────────────────────────────────

func TestAuthService_Verify_Success(t *testing.T) {
	stored := storedCredential(t, "Alice", "secret123")
	credentials := &mockCredentialRepository{
		findFn: func(_ context.Context, identity string) (models.Credential, error) {
			assert.Equal(t, "alice", identity)
			return stored, nil
		},
	}
	svc := newTestAuthService(credentials, &mockPlayerRepository{})

	cred, err := svc.Verify(context.Background(), "  Alice ", "secret123")

	require.NoError(t, err)
	assert.Equal(t, stored, cred)
}

func TestAuthService_Verify_WrongPassword(t *testing.T) {
	stored := storedCredential(t, "Alice", "secret123")
	credentials := &mockCredentialRepository{
		findFn: func(_ context.Context, _ string) (models.Credential, error) {
			return stored, nil
		},
	}
	svc := newTestAuthService(credentials, &mockPlayerRepository{})

	_, err := svc.Verify(context.Background(), "Alice", "not-the-secret")

	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Verify_UnknownIdentity(t *testing.T) {
	credentials := &mockCredentialRepository{
		findFn: func(_ context.Context, _ string) (models.Credential, error) {
			return models.Credential{}, store.ErrNoCredentialFound
		},
	}
	svc := newTestAuthService(credentials, &mockPlayerRepository{})

	_, err := svc.Verify(context.Background(), "ghost", "secret123")

	require.ErrorIs(t, err, store.ErrNoCredentialFound)
}
