package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/models"
)

func (h *Handler) getDelta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deltaRequest, err := deltaRequestFromQuery(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDelta").Msg("invalid delta request parameters")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	delta, err := h.services.SyncService.GetDelta(ctx, deltaRequest)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getDelta").Msg("error collecting delta")
		http.Error(w, "error collecting delta", statusFromError(err))
		return
	}

	response := models.DeltaResponse{
		Records: delta.Records,
		Length:  len(delta.Records),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) pushDelta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var delta models.Delta
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		log.Err(err).Str("func", "*Handler.pushDelta").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	report, err := h.services.SyncService.ApplyDelta(ctx, delta)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pushDelta").Msg("error applying delta")
		http.Error(w, "error applying delta", statusFromError(err))
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) getWatermark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	instanceID := r.URL.Query().Get("instance_id")
	if instanceID == "" {
		log.Error().Str("func", "*Handler.getWatermark").Msg("no instance ID was given")
		http.Error(w, "no instance ID was given", http.StatusBadRequest)
		return
	}
	filter := r.URL.Query().Get("filter")

	mark, err := h.services.SyncService.Watermark(ctx, instanceID, filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getWatermark").Msg("error reading watermark")
		http.Error(w, "error reading watermark", statusFromError(err))
		return
	}

	response := models.WatermarkResponse{
		InstanceID: mark.InstanceID,
		Filter:     mark.Filter,
		MaxCounter: mark.MaxCounter,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// deltaRequestFromQuery parses the GET /api/sync/delta query parameters.
// since_counter defaults to zero when absent.
func deltaRequestFromQuery(r *http.Request) (models.DeltaRequest, error) {
	query := r.URL.Query()

	deltaRequest := models.DeltaRequest{
		InstanceID: query.Get("instance_id"),
		Filter:     query.Get("filter"),
	}
	if deltaRequest.InstanceID == "" {
		return models.DeltaRequest{}, ErrNoInstanceIDProvided
	}

	if rawCounter := query.Get("since_counter"); rawCounter != "" {
		sinceCounter, err := strconv.ParseInt(rawCounter, 10, 64)
		if err != nil {
			return models.DeltaRequest{}, ErrInvalidSinceCounter
		}
		deltaRequest.SinceCounter = sinceCounter
	}

	return deltaRequest, nil
}
