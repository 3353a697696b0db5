package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/models"
)

// issueCertificateRequest is the body of POST /api/certificates/: the caller
// names an issuer certificate held by this instance and the payload it wants
// delegated under it.
type issueCertificateRequest struct {
	IssuerSignature string                    `json:"issuer_signature"`
	Payload         models.CertificatePayload `json:"payload"`
}

func (h *Handler) issueCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request issueCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.issueCertificate").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	certificate, err := h.services.CertificateService.Issue(ctx, request.IssuerSignature, request.Payload)
	if err != nil {
		log.Err(err).Str("func", "*Handler.issueCertificate").Msg("error issuing certificate")
		http.Error(w, "error issuing certificate", statusFromError(err))
		return
	}

	utils.WriteJSON(w, certificate, http.StatusCreated)
}
