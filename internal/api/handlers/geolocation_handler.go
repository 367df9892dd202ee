package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/healthconnect/navigator-api/internal/domain/providers"
	"github.com/healthconnect/navigator-api/internal/infrastructure/observability"
)

// GeolocationHandler handles geocoding endpoints.
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// Geocode handles GET /api/geocode?q=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	address, err := h.provider.Geocode(r.Context(), query)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("query", query).Msg("geocode failed")
		respondWithError(w, http.StatusBadGateway, "failed to geocode query")
		return
	}

	// Same GeocodedAddress shape as ReverseGeocode.
	respondWithJSON(w, http.StatusOK, address)
}

// ReverseGeocode handles GET /api/reverse-geocode?lat=...&lon=...
func (h *GeolocationHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	latStr := strings.TrimSpace(r.URL.Query().Get("lat"))
	lonStr := strings.TrimSpace(r.URL.Query().Get("lon"))
	if latStr == "" || lonStr == "" {
		respondWithError(w, http.StatusBadRequest, "lat and lon parameters are required")
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lon parameter")
		return
	}

	address, err := h.provider.ReverseGeocode(r.Context(), lat, lon)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("reverse geocode failed")
		respondWithError(w, http.StatusBadGateway, "failed to reverse geocode")
		return
	}

	respondWithJSON(w, http.StatusOK, address)
}
