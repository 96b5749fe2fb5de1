package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
)

// Rejection and forced-logout reasons surfaced to callers of
// [GateService.Access].
const (
	ReasonNoSession      = "no_session"
	ReasonSessionExpired = "session_expired"
	ReasonSessionRevoked = "session_revoked"
)

// gateService is the concrete implementation of [GateService], composing the
// session registry and the progress engine.
type gateService struct {
	sessions SessionService
	progress ProgressService
	logger   *logger.Logger
}

// NewGateService constructs a GateService over the given services.
func NewGateService(sessions SessionService, progress ProgressService, logger *logger.Logger) GateService {
	return &gateService{
		sessions: sessions,
		progress: progress,
		logger:   logger,
	}
}

// Access resolves the token and applies offline progress.
//
// When no identity can be resolved (missing token, unknown token, expired
// session) the attempt is rejected without touching any progress record.
//
// When an identity is resolved, progress is accrued and persisted even if
// the session turns out to be superseded: the owner's elapsed real time has
// value regardless of which client observes it, and deferring accrual to
// valid sessions only would silently drop progress during the window in
// which a user is being logged out elsewhere. A superseded session yields
// AccessForceLogout with the fresh progress snapshot attached so the caller
// can render final state before discarding its token.
func (g *gateService) Access(ctx context.Context, token string, now time.Time) (AccessResult, error) {
	log := logger.FromContext(ctx)

	session, status, err := g.sessions.Validate(ctx, token, now)
	if err != nil {
		return AccessResult{}, err
	}

	switch status {
	case SessionNotFound:
		return AccessResult{Status: AccessRejected, Reason: ReasonNoSession}, nil
	case SessionExpired:
		return AccessResult{Status: AccessRejected, Reason: ReasonSessionExpired}, nil
	}

	player, err := g.progress.Sync(ctx, session.Identity, now)
	if err != nil {
		return AccessResult{}, err
	}

	if status == SessionSuperseded {
		log.Debug().Str("identity", session.Identity).Msg("superseded session; forcing logout")
		return AccessResult{
			Status:  AccessForceLogout,
			Reason:  ReasonSessionRevoked,
			Session: session,
			Player:  player,
		}, nil
	}

	return AccessResult{
		Status:  AccessAccepted,
		Session: session,
		Player:  player,
	}, nil
}
