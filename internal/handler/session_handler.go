package handler

import (
	"errors"
	"net/http"

	"github.com/freeeve/principled-summit/internal/auth"
	"github.com/freeeve/principled-summit/internal/service"
	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// SessionHandler handles session lifecycle and message-turn endpoints.
type SessionHandler struct {
	svc *service.NegotiationService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(svc *service.NegotiationService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// sessionView augments the raw session with derived fields the client
// would otherwise recompute.
type sessionView struct {
	*negotiation.Session

	GateState            negotiation.GateState           `json:"gateState"`
	ProjectedScores      map[negotiation.Persona]float64 `json:"projectedScores"`
	AvailableConcessions []negotiation.Concession        `json:"availableConcessions"`
}

func newSessionView(s *negotiation.Session) sessionView {
	return sessionView{
		Session:              s,
		GateState:            s.GateState(),
		ProjectedScores:      s.ProjectedScores(),
		AvailableConcessions: s.AvailableConcessions(),
	}
}

// CreateSession handles POST /api/v1/session — selects a persona and
// starts a fresh negotiation, replacing any existing one.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	var req struct {
		Persona string `json:"persona"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.StartSession(r.Context(), userID, req.Persona)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPersona) {
			writeError(w, http.StatusBadRequest, "persona must be one of: trump, putin")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(s))
}

// GetSession handles GET /api/v1/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	s, err := h.svc.GetSession(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "no active session")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(s))
}

// DeleteSession handles DELETE /api/v1/session
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if err := h.svc.ResetSession(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// PostMessage handles POST /api/v1/session/message — one negotiation turn.
func (h *SessionHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.PlayTurn(r.Context(), userID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "message is required")
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "no active session")
		case errors.Is(err, service.ErrSessionConcluded):
			writeError(w, http.StatusConflict, "the agreement is concluded; start a new session")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}
