package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthconnect/navigator-api/internal/adapters/providers/geolocation"
	"github.com/healthconnect/navigator-api/internal/api/handlers"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestGeocode_ReturnsAddressShape(t *testing.T) {
	handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

	req := httptest.NewRequest("GET", "/api/geocode?q=Kumasi", nil)
	w := httptest.NewRecorder()
	handler.Geocode(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Kumasi, Ashanti Region, Ghana", body["display_name"])
	assert.Equal(t, "Kumasi", body["city"])

	coords, ok := body["coordinates"].(map[string]interface{})
	require.True(t, ok, "coordinates must be a nested object")
	assert.InDelta(t, 6.6885, coords["latitude"], 1e-6)
	assert.InDelta(t, -1.6244, coords["longitude"], 1e-6)
}

func TestGeocode_RequiresQuery(t *testing.T) {
	handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

	req := httptest.NewRequest("GET", "/api/geocode", nil)
	w := httptest.NewRecorder()
	handler.Geocode(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReverseGeocode_SameShapeAsGeocode(t *testing.T) {
	handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

	req := httptest.NewRequest("GET", "/api/reverse-geocode?lat=5.6037&lon=-0.1870", nil)
	w := httptest.NewRecorder()
	handler.ReverseGeocode(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	// Keys match the Geocode response so clients parse one shape.
	assert.Contains(t, body, "display_name")
	assert.Contains(t, body, "city")
	assert.Contains(t, body, "coordinates")
	assert.NotContains(t, body, "DisplayName")

	coords := body["coordinates"].(map[string]interface{})
	assert.InDelta(t, 5.6037, coords["latitude"], 1e-6)
}

func TestReverseGeocode_InvalidParams(t *testing.T) {
	handler := handlers.NewGeolocationHandler(geolocation.NewMockGeolocationProvider())

	req := httptest.NewRequest("GET", "/api/reverse-geocode?lat=abc&lon=-0.18", nil)
	w := httptest.NewRecorder()
	handler.ReverseGeocode(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
