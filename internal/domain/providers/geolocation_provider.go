package providers

import "context"

// GeolocationProvider defines the interface for geocoding services
type GeolocationProvider interface {
	// Geocode converts a free-text place query to coordinates
	Geocode(ctx context.Context, query string) (*GeocodedAddress, error)

	// ReverseGeocode converts coordinates to an address
	ReverseGeocode(ctx context.Context, lat, lon float64) (*GeocodedAddress, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodedAddress represents a geocoded place
type GeocodedAddress struct {
	DisplayName string      `json:"display_name"`
	Street      string      `json:"street,omitempty"`
	Suburb      string      `json:"suburb,omitempty"`
	City        string      `json:"city"`
	Region      string      `json:"region"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}
