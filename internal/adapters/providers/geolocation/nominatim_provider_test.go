package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode_ParsesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "gh", r.URL.Query().Get("countrycodes"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"display_name": "Korle Bu, Accra, Greater Accra Region, Ghana",
			"lat": "5.5365",
			"lon": "-0.2260",
			"address": {"suburb": "Korle Bu", "city": "Accra", "state": "Greater Accra Region", "country": "Ghana"}
		}]`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithHTTP(server.URL, nil, server.Client())
	addr, err := provider.Geocode(context.Background(), "Korle Bu")
	require.NoError(t, err)

	assert.InDelta(t, 5.5365, addr.Coordinates.Latitude, 1e-6)
	assert.InDelta(t, -0.2260, addr.Coordinates.Longitude, 1e-6)
	assert.Equal(t, "Accra", addr.City)
	assert.Equal(t, "Greater Accra Region", addr.Region)
}

func TestGeocode_EmptyQuery(t *testing.T) {
	provider := NewNominatimProviderWithHTTP("http://unused", nil, nil)
	_, err := provider.Geocode(context.Background(), "   ")
	assert.Error(t, err)
}

func TestGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithHTTP(server.URL, nil, server.Client())
	_, err := provider.Geocode(context.Background(), "nowhere at all")
	assert.Error(t, err)
}

func TestReverseGeocode_TownFallsBackToCity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reverse", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"display_name": "Ho, Volta Region, Ghana",
			"lat": "6.6008",
			"lon": "0.4713",
			"address": {"town": "Ho", "state": "Volta Region", "country": "Ghana"}
		}`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithHTTP(server.URL, nil, server.Client())
	addr, err := provider.ReverseGeocode(context.Background(), 6.6008, 0.4713)
	require.NoError(t, err)
	assert.Equal(t, "Ho", addr.City)
	assert.Equal(t, "Volta Region", addr.Region)
}
