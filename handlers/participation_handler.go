package handlers

import (
	"net/http"

	"github.com/cybertour/tournament-api/middleware"
	"github.com/cybertour/tournament-api/services"
)

type ParticipationHandler struct {
	participationService services.ParticipationService
}

func NewParticipationHandler(participationService services.ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{participationService: participationService}
}

func (h *ParticipationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.ParticipationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := middleware.UserFromContext(r.Context())
	participation, err := h.participationService.RegisterTeam(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, participation, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
