package providers

import "context"

// POISource defines the interface for the external points-of-interest dataset
type POISource interface {
	// FetchHealthcarePOIs returns all raw healthcare-tagged elements within
	// radiusMeters of the given center. A failure here means the whole search
	// fails; there is no partial-result mode.
	FetchHealthcarePOIs(ctx context.Context, lat, lon float64, radiusMeters int) ([]POIElement, error)
}

// POIElement is one raw record from the POI dataset. Coordinates come either
// from Lat/Lon (node records) or from Center (way/relation records).
type POIElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat,omitempty"`
	Lon    float64           `json:"lon,omitempty"`
	Center *POICenter        `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// POICenter is the centroid of a non-point element
type POICenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinates resolves the element's position, preferring direct lat/lon
func (e *POIElement) Coordinates() (lat, lon float64, ok bool) {
	if e.Lat != 0 || e.Lon != 0 {
		return e.Lat, e.Lon, true
	}
	if e.Center != nil && (e.Center.Lat != 0 || e.Center.Lon != 0) {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}
