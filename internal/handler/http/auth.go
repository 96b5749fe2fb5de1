package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/service"
	"github.com/MKhiriev/go-idle-keeper/internal/store"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/MKhiriev/go-idle-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	_, err := h.services.AuthService.Register(ctx, req.Username, req.Password, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentity):
			log.Err(err).Msg("invalid username provided")
			utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid name. Use 3-30 chars: letters, numbers, spaces, . _ -"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidPassword):
			log.Err(err).Msg("invalid password provided")
			utils.WriteJSON(w, models.ErrorResponse{Error: "Password must be 6-100 characters"}, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrIdentityExists):
			log.Err(err).Msg("identity already exists")
			utils.WriteJSON(w, models.ErrorResponse{Error: "Name already taken"}, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	cred, err := h.services.AuthService.Verify(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentity) || errors.Is(err, service.ErrInvalidPassword):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.ErrorResponse{Error: "invalid data provided"}, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoCredentialFound):
			log.Err(err).Msg("no user was found")
			utils.WriteJSON(w, models.ErrorResponse{Error: "User not found"}, http.StatusNotFound)
			return
		case errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("wrong password")
			utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid password"}, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	session, err := h.services.SessionService.Create(ctx, cred.Identity, cred.Name, time.Now())
	if err != nil {
		log.Err(err).Str("identity", cred.Identity).Msg("session creation failed")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	log.Debug().Str("identity", cred.Identity).Msg("user successfully logged in")

	h.setSessionCookie(w, r, session.Token, session.ExpiresAt)
	utils.WriteJSON(w, models.LoginResponse{
		OK:        true,
		Name:      cred.Name,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, http.StatusOK)
}
