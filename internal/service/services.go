// Package service implements the application's business logic: credential
// management, the session registry with single-active-session enforcement,
// the idle-progress engine, and the access gate composing them.
package service

import (
	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
)

// Services bundles all application services for injection into transports.
type Services struct {
	AuthService     AuthService
	SessionService  SessionService
	ProgressService ProgressService
	GateService     GateService
	UsernameService UsernameService
}

// NewServices wires the full service graph over the given storages.
func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	auth := NewAuthService(storages.Credentials, storages.Players, cfg, logger)
	sessions := NewSessionService(storages.Sessions, cfg, logger)
	progress := NewProgressService(storages.Players, logger)
	gate := NewGateService(sessions, progress, logger)
	usernames := NewUsernameService(storages.Usernames, logger)

	return &Services{
		AuthService:     auth,
		SessionService:  sessions,
		ProgressService: progress,
		GateService:     gate,
		UsernameService: usernames,
	}
}
