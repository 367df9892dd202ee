package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
)

// AlertDispatcher sends emergency alerts to a user's contacts
type AlertDispatcher interface {
	Dispatch(ctx context.Context, req entities.AlertRequest) (*entities.AlertResult, error)
}

// AlertHandler handles emergency alert HTTP requests
type AlertHandler struct {
	alerts AlertDispatcher
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alerts AlertDispatcher) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

type alertRequestBody struct {
	Message   string           `json:"message"`
	Location  *entities.LatLng `json:"location,omitempty"`
	ContactID string           `json:"contact_id,omitempty"`
}

// DispatchAlert handles POST /api/alerts
func (h *AlertHandler) DispatchAlert(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(userIDHeader))
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	var body alertRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.alerts.Dispatch(r.Context(), entities.AlertRequest{
		UserID:    userID,
		Message:   body.Message,
		Location:  body.Location,
		ContactID: body.ContactID,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
