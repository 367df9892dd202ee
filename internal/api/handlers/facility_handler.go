package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/healthconnect/navigator-api/internal/application/services"
	"github.com/healthconnect/navigator-api/internal/domain/entities"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

const defaultRadiusMeters = 5000

// FacilitySearcher runs the nearby-facility pipeline
type FacilitySearcher interface {
	Search(ctx context.Context, req services.SearchRequest) (*entities.FacilitySearchResult, error)
}

// FacilityHandler handles facility discovery HTTP requests
type FacilityHandler struct {
	searcher FacilitySearcher
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(searcher FacilitySearcher) *FacilityHandler {
	return &FacilityHandler{searcher: searcher}
}

// SearchNearby handles GET /api/facilities/nearby?lat=&lng=&radius=&limit=
func (h *FacilityHandler) SearchNearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	lat, err := parseFloatParam(query.Get("lat"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lat must be a valid number")
		return
	}
	lng, err := parseFloatParam(query.Get("lng"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "lng must be a valid number")
		return
	}

	radius := defaultRadiusMeters
	if raw := strings.TrimSpace(query.Get("radius")); raw != "" {
		radius, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "radius must be a whole number of meters")
			return
		}
	}

	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "limit must be a whole number")
			return
		}
	}

	result, err := h.searcher.Search(r.Context(), services.SearchRequest{
		Latitude:     lat,
		Longitude:    lng,
		RadiusMeters: radius,
		Limit:        limit,
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func parseFloatParam(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(raw, 64)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithServiceError maps the AppError taxonomy to HTTP statuses. An
// unavailable POI source is 503 so clients can distinguish it from an empty
// 200 result.
func respondWithServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
