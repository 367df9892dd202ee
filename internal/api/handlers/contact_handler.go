package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/repositories"
)

// userIDHeader identifies the calling user. There is no account system in
// this deployment; the frontend generates and stores a stable ID per device.
const userIDHeader = "X-User-ID"

// ContactHandler handles emergency contact HTTP requests
type ContactHandler struct {
	contacts repositories.ContactRepository
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contacts repositories.ContactRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type createContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
	Priority     int    `json:"priority"`
}

// CreateContact handles POST /api/contacts
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}
	if strings.TrimSpace(req.Phone) == "" && strings.TrimSpace(req.Email) == "" {
		respondWithError(w, http.StatusBadRequest, "a phone number or email address is required")
		return
	}

	contact := &entities.EmergencyContact{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Relationship: strings.TrimSpace(req.Relationship),
		Priority:     req.Priority,
	}
	if err := h.contacts.Create(r.Context(), contact); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, contact)
}

// ListContacts handles GET /api/contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	contacts, err := h.contacts.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"total":    len(contacts),
	})
}

// DeleteContact handles DELETE /api/contacts/{id}
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}
	contactID := r.PathValue("id")
	if contactID == "" {
		respondWithError(w, http.StatusBadRequest, "contact ID is required")
		return
	}

	if err := h.contacts.Delete(r.Context(), userID, contactID); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
