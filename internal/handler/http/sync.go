package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/service"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// syncProgress accrues the caller's offline progress and returns the fresh
// snapshot. Unlike session check, an unauthenticated call here is an error:
// the endpoint exists only for logged-in clients.
//
// A superseded session still gets its snapshot, flagged with force_logout so
// the client renders final state before discarding its token.
func (h *Handler) syncProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, ok := utils.GetSessionTokenFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Error: "Unauthorized"}, http.StatusUnauthorized)
		return
	}

	now := time.Now()
	result, err := h.services.GateService.Access(ctx, token, now)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoPlayerFound):
			log.Err(err).Msg("no progress record for session identity")
			utils.WriteJSON(w, models.ErrorResponse{Error: "Player data not found"}, http.StatusNotFound)
			return
		default:
			log.Err(err).Msg("progress sync failed")
			utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	switch result.Status {
	case service.AccessRejected:
		log.Debug().Str("reason", result.Reason).Msg("progress sync rejected")
		h.clearSessionCookie(w, r)
		utils.WriteJSON(w, models.ErrorResponse{Error: "Unauthorized"}, http.StatusUnauthorized)
		return

	case service.AccessForceLogout:
		log.Debug().Str("identity", result.Session.Identity).Msg("superseded session synced; forcing logout")
		h.clearSessionCookie(w, r)
		utils.WriteJSON(w, progressResponse(result.Player, false, true, now), http.StatusOK)
		return
	}

	h.setSessionCookie(w, r, result.Session.Token, result.Session.ExpiresAt)
	utils.WriteJSON(w, progressResponse(result.Player, true, false, now), http.StatusOK)
}

func progressResponse(player models.Player, ok, forceLogout bool, now time.Time) models.ProgressResponse {
	return models.ProgressResponse{
		OK:          ok,
		ForceLogout: forceLogout,
		Name:        player.Name,
		Level:       player.Level,
		XP:          player.XP,
		XPPerLevel:  player.XPPerLevel,
		XPPerSec:    player.XPPerSec,
		ServerTime:  now,
	}
}
