// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-idle-keeper/internal/logger"
	"github.com/MKhiriev/go-idle-keeper/internal/service"
	"github.com/MKhiriev/go-idle-keeper/internal/utils"
	"github.com/MKhiriev/go-idle-keeper/models"
)

// getRecentUsernames serves the public list of recently registered names,
// newest first. No session is required.
func (h *Handler) getRecentUsernames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	list, err := h.services.UsernameService.Recent(ctx)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred listing usernames")
		utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.RecentUsername{}
	}

	utils.WriteJSON(w, models.UsernamesResponse{Usernames: list}, http.StatusOK)
}

// pushUsername records a name on the public recent-usernames list.
func (h *Handler) pushUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.UsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	if err := h.services.UsernameService.Push(ctx, req.Username, time.Now()); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidIdentity):
			log.Err(err).Msg("invalid username provided")
			utils.WriteJSON(w, models.ErrorResponse{Error: "Invalid username"}, http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred pushing username")
			utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}
