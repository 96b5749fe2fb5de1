package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// playerRepository is the blob-store-backed implementation of
// [PlayerRepository]. One JSON blob per identity under "player/<identity>".
type playerRepository struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewPlayerRepository constructs a [PlayerRepository] backed by the provided
// blob store and logger.
func NewPlayerRepository(blobs BlobStore, logger *logger.Logger) PlayerRepository {
	logger.Debug().Msg("creating player repository")
	return &playerRepository{
		blobs:  blobs,
		logger: logger,
	}
}

// Save stores or overwrites the player record keyed by its identity.
func (r *playerRepository) Save(ctx context.Context, player models.Player) error {
	log := logger.FromContext(ctx)

	blob, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("error encoding player: %w", err)
	}

	if err := r.blobs.Set(ctx, playerKey(player.Identity), blob); err != nil {
		log.Err(err).Str("func", "*playerRepository.Save").Msg("error writing player")
		return fmt.Errorf("error writing player: %w", err)
	}

	return nil
}

// Find retrieves the player record of the given normalized identity.
// Decoded records pass through [models.Player.Normalize], which upgrades
// legacy blobs and re-establishes the record invariants.
func (r *playerRepository) Find(ctx context.Context, identity string) (models.Player, error) {
	log := logger.FromContext(ctx)

	blob, err := r.blobs.Get(ctx, playerKey(identity))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return models.Player{}, ErrNoPlayerFound
		}
		log.Err(err).Str("func", "*playerRepository.Find").Msg("error reading player")
		return models.Player{}, fmt.Errorf("error reading player: %w", err)
	}

	var player models.Player
	if err := json.Unmarshal(blob, &player); err != nil {
		log.Err(err).Str("func", "*playerRepository.Find").Msg("error decoding player")
		return models.Player{}, fmt.Errorf("error decoding player: %w", err)
	}

	player.Normalize()

	return player, nil
}
