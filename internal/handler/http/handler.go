package http

import (
	"github.com/MKhiriev/go-idle-keeper/internal/config"
	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// cookieName is the name of the session cookie issued at login.
	cookieName string

	// appVersion is served verbatim by the version endpoint.
	appVersion string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		cookieName: cfg.CookieName,
		appVersion: cfg.Version,
		logger:     logger,
	}
}
