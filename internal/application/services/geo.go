package services

import "math"

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometers between two
// latitude/longitude pairs.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Ghana's bounding box, used only to warn about suspicious search centers
const (
	ghanaMinLat = 4.5
	ghanaMaxLat = 11.2
	ghanaMinLon = -3.3
	ghanaMaxLon = 1.2
)

func withinGhana(lat, lon float64) bool {
	return lat >= ghanaMinLat && lat <= ghanaMaxLat && lon >= ghanaMinLon && lon <= ghanaMaxLon
}
