package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/freeeve/principled-summit/internal/auth"
	"github.com/freeeve/principled-summit/internal/service"
)

// AgreementHandler handles the agreement gate endpoints and the archive.
type AgreementHandler struct {
	svc *service.NegotiationService
}

// NewAgreementHandler creates an AgreementHandler.
func NewAgreementHandler(svc *service.NegotiationService) *AgreementHandler {
	return &AgreementHandler{svc: svc}
}

// RequestAgreement handles POST /api/v1/session/agreement/request.
// A refused request is a 200 with ok=false, not an error.
func (h *AgreementHandler) RequestAgreement(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	out, err := h.svc.RequestAgreement(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "no active session")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ConcludeAgreement handles POST /api/v1/session/agreement/conclude.
func (h *AgreementHandler) ConcludeAgreement(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	out, err := h.svc.ConcludeAgreement(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "no active session")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListAgreements handles GET /api/v1/agreements — recently archived
// concluded agreements. Returns 503 when no archive is configured.
func (h *AgreementHandler) ListAgreements(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	records, err := h.svc.ListAgreements(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrNoArchive) {
			writeError(w, http.StatusServiceUnavailable, "agreement archive is not configured")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, records)
}
