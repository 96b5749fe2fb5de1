package store

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
)

func TestNewStorages_Memory(t *testing.T) {
	storages, err := NewStorages(context.Background(), config.Storage{Backend: config.BackendMemory}, logger.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer storages.Close()

	if storages.Credentials == nil || storages.Sessions == nil || storages.Players == nil || storages.Usernames == nil {
		t.Fatal("all repositories must be wired")
	}
}

func TestNewStorages_UnknownBackend(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{Backend: "cassandra"}, logger.Nop())
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
