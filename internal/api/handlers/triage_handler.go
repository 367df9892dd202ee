package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
)

// TriageManager drives symptom triage sessions
type TriageManager interface {
	StartSession(ctx context.Context, userID string) (*entities.TriageSession, error)
	GetSession(ctx context.Context, sessionID string) (*entities.TriageSession, error)
	SendMessage(ctx context.Context, sessionID, content string) (*entities.TriageSession, error)
}

// TriageHandler handles symptom triage HTTP requests
type TriageHandler struct {
	triage TriageManager
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(triage TriageManager) *TriageHandler {
	return &TriageHandler{triage: triage}
}

type startSessionRequest struct {
	UserID string `json:"user_id"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// StartSession handles POST /api/triage/sessions
func (h *TriageHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.triage.StartSession(r.Context(), req.UserID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, session)
}

// GetSession handles GET /api/triage/sessions/{id}
func (h *TriageHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	session, err := h.triage.GetSession(r.Context(), sessionID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

// SendMessage handles POST /api/triage/sessions/{id}/messages
func (h *TriageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		respondWithError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.triage.SendMessage(r.Context(), sessionID, req.Content)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}
