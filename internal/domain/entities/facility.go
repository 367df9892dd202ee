package entities

// FacilityType classifies a healthcare facility
type FacilityType string

const (
	FacilityTypeHospital     FacilityType = "hospital"
	FacilityTypeClinic       FacilityType = "clinic"
	FacilityTypePharmacy     FacilityType = "pharmacy"
	FacilityTypeHealthCenter FacilityType = "health_center"
)

// Facility represents a healthcare facility projected from the external POI
// dataset. It is built fresh for every search and never persisted; DistanceKm
// is relative to the center of the search that produced it.
type Facility struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Type              FacilityType `json:"type"`
	Address           string       `json:"address"`
	City              string       `json:"city"`
	Region            string       `json:"region"`
	DistanceKm        float64      `json:"distance"`
	Coordinates       Location     `json:"coordinates"`
	Services          []string     `json:"services"`
	Phone             string       `json:"phone"`
	Hours             string       `json:"hours"`
	Website           string       `json:"website,omitempty"`
	EmergencyServices bool         `json:"emergencyServices"`
	Rating            float64      `json:"rating"`
	Reviews           int          `json:"reviews"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FacilitySearchResult is the response payload for a nearby-facility search
type FacilitySearchResult struct {
	Facilities []*Facility `json:"facilities"`
	Total      int         `json:"total"`
	Location   LatLng      `json:"location"`
	RadiusKm   float64     `json:"radiusKm"`
	Message    string      `json:"message,omitempty"`
}

// LatLng mirrors the {lat,lng} shape the frontend map expects
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
