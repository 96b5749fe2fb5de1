package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// Username and password bounds, applied after sanitization.
const (
	minNameLen     = 3
	maxNameLen     = 30
	minPasswordLen = 6
	maxPasswordLen = 100
)

// disallowedNameChars matches everything outside the permitted username set:
// word characters, dot, dash, and space.
var disallowedNameChars = regexp.MustCompile(`[^\w. -]`)

// authService is the concrete implementation of [AuthService].
// It handles user registration and credential verification using a
// CredentialRepository for persistence and a salted scrypt digest for
// password storage. Registration also seeds the player's initial progress
// record via the PlayerRepository.
type authService struct {
	// credentials is the data-access layer for account credentials.
	credentials store.CredentialRepository

	// players is used to create the initial progress record at registration.
	players store.PlayerRepository

	// xpPerLevel and xpPerSec are the progression parameters stamped onto
	// newly created player records.
	xpPerLevel float64
	xpPerSec   float64

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with progression parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(credentials store.CredentialRepository, players store.PlayerRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		credentials: credentials,
		players:     players,
		xpPerLevel:  cfg.XPPerLevel,
		xpPerSec:    cfg.XPPerSec,
		logger:      logger,
	}
}

// Register creates a new account.
//
// The username is sanitized (trimmed, disallowed characters stripped) and
// validated, then normalized to its identity form (lowercased). The password
// is validated and hashed with a fresh salt. On success the credential and
// the initial player record are persisted.
//
// Returns the persisted credential or:
//   - ErrInvalidIdentity / ErrInvalidPassword on validation failure, before
//     any storage access.
//   - store.ErrIdentityExists if the normalized identity is already taken;
//     the duplicate check and the credential write are one atomic step.
func (a *authService) Register(ctx context.Context, username, password string, now time.Time) (models.Credential, error) {
	log := logger.FromContext(ctx)

	name := sanitizeName(username)
	if !validName(name) {
		log.Error().Str("name", name).Msg("invalid username provided")
		return models.Credential{}, ErrInvalidIdentity
	}
	if !validPassword(password) {
		log.Error().Msg("invalid password provided")
		return models.Credential{}, ErrInvalidPassword
	}

	identity := normalizeIdentity(name)

	salt, err := utils.NewSalt()
	if err != nil {
		return models.Credential{}, fmt.Errorf("credential creation ended with error: %w", err)
	}

	digest, err := utils.DerivePassword(password, salt)
	if err != nil {
		return models.Credential{}, fmt.Errorf("credential creation ended with error: %w", err)
	}

	cred := models.Credential{
		Identity:      identity,
		Name:          name,
		Salt:          salt,
		Digest:        digest,
		CreatedAt:     now,
		SchemaVersion: models.CredentialSchemaVersion,
	}

	if err := a.credentials.Create(ctx, cred); err != nil {
		log.Err(err).Str("identity", identity).Msg("credential creation ended with error")
		return models.Credential{}, fmt.Errorf("credential creation ended with error: %w", err)
	}

	player := models.NewPlayer(identity, name, now)
	player.XPPerLevel = a.xpPerLevel
	player.XPPerSec = a.xpPerSec
	if err := a.players.Save(ctx, player); err != nil {
		log.Err(err).Str("identity", identity).Msg("initial player creation ended with error")
		// The blob store offers no cross-key atomicity, so roll the
		// credential back; otherwise a registered identity would exist whose
		// every sync fails on a missing player record. Best effort: if the
		// delete fails too, re-registration remains blocked until it is
		// retried out of band.
		if delErr := a.credentials.Delete(ctx, identity); delErr != nil {
			log.Err(delErr).Str("identity", identity).Msg("credential rollback ended with error")
		}
		return models.Credential{}, fmt.Errorf("initial player creation ended with error: %w", err)
	}

	return cred, nil
}

// Verify authenticates an existing account.
//
// It normalizes the username the same way Register does, looks up the
// credential, derives the candidate digest under the stored salt, and
// compares it with the stored digest in constant time.
//
// Returns the stored credential or:
//   - ErrInvalidIdentity / ErrInvalidPassword on validation failure.
//   - store.ErrNoCredentialFound (wrapped) if the identity is unknown.
//   - ErrWrongPassword if the digests do not match.
func (a *authService) Verify(ctx context.Context, username, password string) (models.Credential, error) {
	log := logger.FromContext(ctx)

	name := sanitizeName(username)
	if !validName(name) {
		log.Error().Str("name", name).Msg("invalid username provided")
		return models.Credential{}, ErrInvalidIdentity
	}
	if !validPassword(password) {
		log.Error().Msg("invalid password provided")
		return models.Credential{}, ErrInvalidPassword
	}

	identity := normalizeIdentity(name)

	cred, err := a.credentials.Find(ctx, identity)
	if err != nil {
		log.Err(err).Str("identity", identity).Msg("credential search failed")
		return models.Credential{}, fmt.Errorf("credential search failed: %w", err)
	}

	ok, err := utils.VerifyPassword(password, cred.Salt, cred.Digest)
	if err != nil {
		log.Err(err).Str("identity", identity).Msg("digest verification failed")
		return models.Credential{}, fmt.Errorf("digest verification failed: %w", err)
	}
	if !ok {
		log.Error().Str("identity", identity).Msg("wrong password")
		return models.Credential{}, ErrWrongPassword
	}

	return cred, nil
}

// sanitizeName trims the entered username and strips every character outside
// the permitted set. Applied before validation so that a name made entirely
// of stripped characters is rejected as too short.
func sanitizeName(s string) string {
	return disallowedNameChars.ReplaceAllString(strings.TrimSpace(s), "")
}

// normalizeIdentity maps a sanitized display name to its stored identity.
// Pure and applied identically at registration and login: usernames that
// differ only by case or surrounding whitespace collide.
func normalizeIdentity(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validName(name string) bool {
	return len(name) >= minNameLen && len(name) <= maxNameLen
}

func validPassword(password string) bool {
	return len(password) >= minPasswordLen && len(password) <= maxPasswordLen
}
