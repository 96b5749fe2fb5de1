package store

import (
	"context"
	"sync"
)

// memoryBlobStore is the in-process [BlobStore] used for tests and for
// single-node deployments that need no durability. A single RWMutex
// serializes writers, which is what gives per-key atomicity here.
type memoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore returns an empty in-memory [BlobStore].
func NewMemoryBlobStore() BlobStore {
	return &memoryBlobStore{
		blobs: make(map[string][]byte),
	}
}

func (m *memoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	// copy so callers cannot mutate the stored blob
	out := make([]byte, len(blob))
	copy(out, blob)

	return out, nil
}

func (m *memoryBlobStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.blobs[key] = stored

	return nil
}

func (m *memoryBlobStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[key]; ok {
		return false, nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.blobs[key] = stored

	return true, nil
}

func (m *memoryBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, key)

	return nil
}

func (m *memoryBlobStore) Close() error {
	return nil
}
