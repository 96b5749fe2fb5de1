package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// maxLevelUpsPerAccrual bounds the level-up drain loop of a single accrual.
// The loop terminates in at most this many iterations regardless of how much
// time elapsed or how the rates are configured; hitting the bound is
// reported as ErrAccrualCapped with the record clamped at the boundary.
const maxLevelUpsPerAccrual = 100000

// progressService is the concrete implementation of [ProgressService].
//
// Accrual is a pure function of elapsed wall-clock time, so a player's
// record advances identically whether they stayed connected or were offline
// the whole time — connection events play no role.
type progressService struct {
	players store.PlayerRepository
	logger  *logger.Logger
}

// NewProgressService constructs a ProgressService over the given repository.
func NewProgressService(players store.PlayerRepository, logger *logger.Logger) ProgressService {
	return &progressService{
		players: players,
		logger:  logger,
	}
}

// Accrue advances the record to now.
//
// Whole seconds elapsed since the last accrual are converted to experience
// at the record's rate, then full levels are drained off. Negative elapsed
// time (clock skew) clamps to zero: experience is never subtracted and
// LastXPAt never moves backwards. Less than one whole second elapsed leaves
// the record untouched and reports changed=false, which also makes a repeat
// accrual at the same instant a no-op.
func (p *progressService) Accrue(player models.Player, now time.Time) (models.Player, bool, error) {
	elapsed := int64(now.Sub(player.LastXPAt) / time.Second)
	if elapsed <= 0 {
		return player, false, nil
	}

	player.XP += float64(elapsed) * player.XPPerSec
	player.LastXPAt = now

	var loops int
	for player.XP >= player.XPPerLevel && loops < maxLevelUpsPerAccrual {
		player.Level++
		player.XP -= player.XPPerLevel
		loops++
	}

	player.UpdatedAt = now

	if player.XP >= player.XPPerLevel {
		return player, true, fmt.Errorf("%w: %d level-ups in one accrual", ErrAccrualCapped, loops)
	}

	return player, true, nil
}

// Sync loads the identity's record, accrues it to now, and persists the
// result if anything changed.
//
// A capped accrual is an anomaly, not a failure: it is logged and the
// clamped record is persisted and returned, so the request degrades to a
// bounded result instead of crashing.
//
// Returns store.ErrNoPlayerFound (wrapped) if no record exists, or a storage
// error if the read or the write-back fails.
func (p *progressService) Sync(ctx context.Context, identity string, now time.Time) (models.Player, error) {
	log := logger.FromContext(ctx)

	player, err := p.players.Find(ctx, identity)
	if err != nil {
		log.Err(err).Str("identity", identity).Msg("player lookup failed")
		return models.Player{}, fmt.Errorf("player lookup failed: %w", err)
	}

	accrued, changed, err := p.Accrue(player, now)
	if err != nil {
		if !errors.Is(err, ErrAccrualCapped) {
			return models.Player{}, err
		}
		log.Warn().
			Str("identity", identity).
			Int64("level", accrued.Level).
			Msg("accrual hit the level-up cap; result clamped")
	}

	if !changed {
		return player, nil
	}

	if err := p.players.Save(ctx, accrued); err != nil {
		log.Err(err).Str("identity", identity).Msg("player save failed")
		return models.Player{}, fmt.Errorf("player save failed: %w", err)
	}

	return accrued, nil
}
