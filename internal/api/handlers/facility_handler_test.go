package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthconnect/navigator-api/internal/api/handlers"
	"github.com/healthconnect/navigator-api/internal/application/services"
	"github.com/healthconnect/navigator-api/internal/domain/entities"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

type stubSearcher struct {
	result   *entities.FacilitySearchResult
	err      error
	lastReq  services.SearchRequest
	searched bool
}

func (s *stubSearcher) Search(_ context.Context, req services.SearchRequest) (*entities.FacilitySearchResult, error) {
	s.searched = true
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestSearchNearby_Success(t *testing.T) {
	searcher := &stubSearcher{result: &entities.FacilitySearchResult{
		Facilities: []*entities.Facility{{ID: "node-1", Name: "Ridge Hospital"}},
		Total:      1,
		Location:   entities.LatLng{Lat: 5.6037, Lng: -0.1870},
		RadiusKm:   5,
	}}
	handler := handlers.NewFacilityHandler(searcher)

	req := httptest.NewRequest("GET", "/api/facilities/nearby?lat=5.6037&lng=-0.1870&radius=5000&limit=20", nil)
	w := httptest.NewRecorder()
	handler.SearchNearby(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.SearchRequest{
		Latitude:     5.6037,
		Longitude:    -0.1870,
		RadiusMeters: 5000,
		Limit:        20,
	}, searcher.lastReq)

	var response entities.FacilitySearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, "Ridge Hospital", response.Facilities[0].Name)
}

func TestSearchNearby_DefaultRadius(t *testing.T) {
	searcher := &stubSearcher{result: &entities.FacilitySearchResult{}}
	handler := handlers.NewFacilityHandler(searcher)

	req := httptest.NewRequest("GET", "/api/facilities/nearby?lat=5.6&lng=-0.18", nil)
	w := httptest.NewRecorder()
	handler.SearchNearby(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5000, searcher.lastReq.RadiusMeters)
}

func TestSearchNearby_BadParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing lat", "/api/facilities/nearby?lng=-0.18"},
		{"missing lng", "/api/facilities/nearby?lat=5.6"},
		{"non-numeric lat", "/api/facilities/nearby?lat=abc&lng=-0.18"},
		{"non-numeric radius", "/api/facilities/nearby?lat=5.6&lng=-0.18&radius=far"},
		{"non-numeric limit", "/api/facilities/nearby?lat=5.6&lng=-0.18&limit=many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &stubSearcher{}
			handler := handlers.NewFacilityHandler(searcher)

			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			handler.SearchNearby(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, searcher.searched, "bad params must not reach the service")
		})
	}
}

func TestSearchNearby_ValidationErrorFromService(t *testing.T) {
	searcher := &stubSearcher{err: apperrors.NewValidationError("latitude must be between -90 and 90")}
	handler := handlers.NewFacilityHandler(searcher)

	req := httptest.NewRequest("GET", "/api/facilities/nearby?lat=95&lng=-0.18", nil)
	w := httptest.NewRecorder()
	handler.SearchNearby(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchNearby_SourceUnavailable(t *testing.T) {
	searcher := &stubSearcher{err: apperrors.NewUnavailableError("facility data source is temporarily unavailable", nil)}
	handler := handlers.NewFacilityHandler(searcher)

	req := httptest.NewRequest("GET", "/api/facilities/nearby?lat=5.6&lng=-0.18", nil)
	w := httptest.NewRecorder()
	handler.SearchNearby(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response["error"])
}
