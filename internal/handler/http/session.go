package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/models"
)

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var sessionRequest models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&sessionRequest); err != nil {
		log.Err(err).Str("func", "*Handler.openSession").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	session, err := h.services.SessionService.Open(ctx, sessionRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.openSession").Msg("error opening sync session")
		http.Error(w, "error opening sync session", statusFromError(err))
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}
