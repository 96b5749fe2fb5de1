package models

import "time"

// PlayerSchemaVersion is the current storage schema version written into
// every persisted [Player] blob.
const PlayerSchemaVersion = 1

// Default progression parameters applied to new players and to legacy blobs
// whose rate fields are missing or zero.
const (
	DefaultXPPerLevel = 100
	DefaultXPPerSec   = 1
)

// Player is the per-identity incremental-progress record.
//
// Invariants maintained by the progress engine:
//   - Level >= 1
//   - 0 <= XP < XPPerLevel after every accrual
//   - LastXPAt is monotonically non-decreasing
//   - XPPerLevel > 0, XPPerSec >= 0
type Player struct {
	// Identity is the normalized identity owning this record.
	Identity string `json:"identity"`

	// Name is the owner's display name.
	Name string `json:"name"`

	// Level is the current level, starting at 1.
	Level int64 `json:"level"`

	// XP is the experience accumulated within the current level.
	XP float64 `json:"xp"`

	// XPPerLevel is the amount of experience needed to advance one level.
	XPPerLevel float64 `json:"per_level"`

	// XPPerSec is the experience gained per elapsed wall-clock second,
	// whether or not the owner is connected.
	XPPerSec float64 `json:"per_sec"`

	// CreatedAt is the timestamp when the record was created.
	CreatedAt time.Time `json:"created_at"`

	// LastXPAt is the instant up to which experience has been accrued.
	LastXPAt time.Time `json:"last_xp_at"`

	// UpdatedAt is the timestamp of the last persisted mutation.
	UpdatedAt time.Time `json:"updated_at"`

	// SchemaVersion tags the storage representation of this record.
	SchemaVersion int `json:"schema_version"`
}

// NewPlayer returns the initial progress record created at registration.
func NewPlayer(identity, name string, now time.Time) Player {
	return Player{
		Identity:      identity,
		Name:          name,
		Level:         1,
		XP:            0,
		XPPerLevel:    DefaultXPPerLevel,
		XPPerSec:      DefaultXPPerSec,
		CreatedAt:     now,
		LastXPAt:      now,
		UpdatedAt:     now,
		SchemaVersion: PlayerSchemaVersion,
	}
}

// Normalize upgrades a decoded record to the current schema: legacy blobs may
// lack the rate fields or the last-accrual timestamp. Defaults are applied
// here, at the decode boundary, so the rest of the system can rely on the
// invariants above.
func (p *Player) Normalize() {
	if p.SchemaVersion < PlayerSchemaVersion {
		// Legacy blobs carried no rate fields at all; zero means "unset".
		if p.XPPerLevel == 0 {
			p.XPPerLevel = DefaultXPPerLevel
		}
		if p.XPPerSec == 0 {
			p.XPPerSec = DefaultXPPerSec
		}
	}

	if p.XPPerLevel <= 0 {
		p.XPPerLevel = DefaultXPPerLevel
	}
	if p.XPPerSec < 0 {
		p.XPPerSec = 0
	}
	if p.Level < 1 {
		p.Level = 1
	}
	if p.LastXPAt.IsZero() {
		p.LastXPAt = p.CreatedAt
	}
	p.SchemaVersion = PlayerSchemaVersion
}
