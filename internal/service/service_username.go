package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// recentUsernamesLimit caps how many entries the public list exposes.
const recentUsernamesLimit = 20

// minRecentNameLen is looser than the registration minimum: the list also
// carries names picked before an account exists.
const minRecentNameLen = 2

// usernameService is the concrete implementation of [UsernameService].
type usernameService struct {
	usernames store.UsernameRepository
	logger    *logger.Logger
}

// NewUsernameService constructs a UsernameService over the given repository.
func NewUsernameService(usernames store.UsernameRepository, logger *logger.Logger) UsernameService {
	return &usernameService{
		usernames: usernames,
		logger:    logger,
	}
}

// Push sanitizes the entered name the same way registration does, validates
// its length, and records it as the newest entry.
func (u *usernameService) Push(ctx context.Context, username string, now time.Time) error {
	log := logger.FromContext(ctx)

	name := sanitizeName(username)
	if len(name) < minRecentNameLen || len(name) > maxNameLen {
		log.Error().Str("name", name).Msg("invalid username provided")
		return ErrInvalidIdentity
	}

	if err := u.usernames.Push(ctx, name, now); err != nil {
		log.Err(err).Msg("username push ended with error")
		return fmt.Errorf("username push ended with error: %w", err)
	}

	return nil
}

// Recent returns the newest entries, most recent first.
func (u *usernameService) Recent(ctx context.Context) ([]models.RecentUsername, error) {
	log := logger.FromContext(ctx)

	list, err := u.usernames.Recent(ctx, recentUsernamesLimit)
	if err != nil {
		log.Err(err).Msg("username listing ended with error")
		return nil, fmt.Errorf("username listing ended with error: %w", err)
	}

	return list, nil
}
