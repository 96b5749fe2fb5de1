package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/service"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// checkSession reports whether the presented token still names a live
// session. A missing, unknown, expired, or superseded token is an answer,
// not an error: the endpoint responds 200 with {ok:false} and clears the
// cookie so the client starts from a clean slate. Only a storage failure
// produces an error status.
func (h *Handler) checkSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, ok := utils.GetSessionTokenFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.SessionCheckResponse{OK: false}, http.StatusOK)
		return
	}

	result, err := h.services.GateService.Access(ctx, token, time.Now())
	if err != nil {
		log.Err(err).Msg("session check failed")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	if result.Status != service.AccessAccepted {
		log.Debug().Str("reason", result.Reason).Msg("session check negative")
		h.clearSessionCookie(w, r)
		utils.WriteJSON(w, models.SessionCheckResponse{OK: false}, http.StatusOK)
		return
	}

	expiresAt := result.Session.ExpiresAt
	h.setSessionCookie(w, r, result.Session.Token, expiresAt)
	utils.WriteJSON(w, models.SessionCheckResponse{
		OK:        true,
		Name:      result.Session.Name,
		ExpiresAt: &expiresAt,
		Progress: &models.ProgressInfo{
			Level:      result.Player.Level,
			XP:         result.Player.XP,
			XPPerLevel: result.Player.XPPerLevel,
			XPPerSec:   result.Player.XPPerSec,
		},
	}, http.StatusOK)
}

// logout revokes the presented session. Idempotent: logging out without a
// session, or with a stale token, still answers {ok:true}.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token, ok := utils.GetSessionTokenFromContext(ctx)
	if ok {
		if err := h.services.SessionService.Revoke(ctx, token); err != nil {
			log.Err(err).Msg("session revocation failed")
			utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	h.clearSessionCookie(w, r)
	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}
