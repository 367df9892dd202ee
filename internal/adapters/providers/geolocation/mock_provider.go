package geolocation

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthconnect/navigator-api/internal/domain/providers"
)

// MockGeolocationProvider implements a deterministic geolocation provider for
// development and tests.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

var mockPlaces = map[string]providers.GeocodedAddress{
	"Accra": {
		DisplayName: "Accra, Greater Accra Region, Ghana",
		City:        "Accra",
		Region:      "Greater Accra Region",
		Country:     "Ghana",
		Coordinates: providers.Coordinates{Latitude: 5.6037, Longitude: -0.1870},
	},
	"Kumasi": {
		DisplayName: "Kumasi, Ashanti Region, Ghana",
		City:        "Kumasi",
		Region:      "Ashanti Region",
		Country:     "Ghana",
		Coordinates: providers.Coordinates{Latitude: 6.6885, Longitude: -1.6244},
	},
	"Tamale": {
		DisplayName: "Tamale, Northern Region, Ghana",
		City:        "Tamale",
		Region:      "Northern Region",
		Country:     "Ghana",
		Coordinates: providers.Coordinates{Latitude: 9.4008, Longitude: -0.8393},
	},
	"Takoradi": {
		DisplayName: "Takoradi, Western Region, Ghana",
		City:        "Takoradi",
		Region:      "Western Region",
		Country:     "Ghana",
		Coordinates: providers.Coordinates{Latitude: 4.8845, Longitude: -1.7554},
	},
}

// Geocode converts a place query to coordinates (mock implementation)
func (m *MockGeolocationProvider) Geocode(ctx context.Context, query string) (*providers.GeocodedAddress, error) {
	for city, addr := range mockPlaces {
		if strings.Contains(strings.ToLower(query), strings.ToLower(city)) {
			result := addr
			return &result, nil
		}
	}

	// Default to central Accra
	result := mockPlaces["Accra"]
	return &result, nil
}

// ReverseGeocode converts coordinates to an address (mock implementation)
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	return &providers.GeocodedAddress{
		DisplayName: fmt.Sprintf("%.4f, %.4f", lat, lon),
		City:        "Accra",
		Region:      "Greater Accra Region",
		Country:     "Ghana",
		Coordinates: providers.Coordinates{Latitude: lat, Longitude: lon},
	}, nil
}
