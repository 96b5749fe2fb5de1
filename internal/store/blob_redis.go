package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

// redisBlobStore implements [BlobStore] over a redis instance. Records are
// stored without TTL: session expiry is application-level (sliding window,
// lazily detected), not a cache concern.
type redisBlobStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisBlobStore connects to redis with a short ping-retry loop and
// returns a [BlobStore] over plain redis keys.
func NewRedisBlobStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (BlobStore, error) {
	const maxRetries = 3

	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			lastErr = fmt.Errorf("failed to ping redis: %w", err)
			client.Close()
			if i < maxRetries {
				time.Sleep(time.Second)
			}
			continue
		}

		log.Info().Str("func", "NewRedisBlobStore").Msg("connected to redis successfully")
		return &redisBlobStore{client: client, logger: log}, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, lastErr)
}

func (r *redisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return value, nil
}

func (r *redisBlobStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return nil
}

func (r *redisBlobStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	written, err := r.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return written, nil
}

func (r *redisBlobStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return nil
}

func (r *redisBlobStore) Close() error {
	return r.client.Close()
}
