// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// usernameRepository is the blob-store-backed implementation of
// [UsernameRepository]. The whole list lives in one JSON blob under
// "usernames"; Push is a read-modify-write on that blob.
type usernameRepository struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewUsernameRepository constructs a [UsernameRepository] backed by the
// provided blob store and logger.
func NewUsernameRepository(blobs BlobStore, logger *logger.Logger) UsernameRepository {
	logger.Debug().Msg("creating username repository")
	return &usernameRepository{
		blobs:  blobs,
		logger: logger,
	}
}

// Push appends name as the newest entry, dropping any prior entry whose name
// matches case-insensitively.
func (r *usernameRepository) Push(ctx context.Context, name string, now time.Time) error {
	log := logger.FromContext(ctx)

	list, err := r.load(ctx)
	if err != nil {
		log.Err(err).Str("func", "*usernameRepository.Push").Msg("error reading usernames")
		return fmt.Errorf("error reading usernames: %w", err)
	}

	lower := strings.ToLower(name)
	kept := list[:0]
	for _, entry := range list {
		if strings.ToLower(entry.Name) != lower {
			kept = append(kept, entry)
		}
	}
	kept = append(kept, models.RecentUsername{Name: name, SeenAt: now})

	blob, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("error encoding usernames: %w", err)
	}

	if err := r.blobs.Set(ctx, usernamesKey, blob); err != nil {
		log.Err(err).Str("func", "*usernameRepository.Push").Msg("error writing usernames")
		return fmt.Errorf("error writing usernames: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (r *usernameRepository) Recent(ctx context.Context, limit int) ([]models.RecentUsername, error) {
	log := logger.FromContext(ctx)

	list, err := r.load(ctx)
	if err != nil {
		log.Err(err).Str("func", "*usernameRepository.Recent").Msg("error reading usernames")
		return nil, fmt.Errorf("error reading usernames: %w", err)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SeenAt.After(list[j].SeenAt)
	})
	if limit >= 0 && len(list) > limit {
		list = list[:limit]
	}

	return list, nil
}

func (r *usernameRepository) load(ctx context.Context) ([]models.RecentUsername, error) {
	blob, err := r.blobs.Get(ctx, usernamesKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var list []models.RecentUsername
	if err := json.Unmarshal(blob, &list); err != nil {
		return nil, fmt.Errorf("error decoding usernames: %w", err)
	}

	return list, nil
}
