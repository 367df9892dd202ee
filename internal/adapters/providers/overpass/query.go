package overpass

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

// healthcareSelectors are the tag filters that identify a healthcare POI.
// Every selector is expanded over node/way/relation so facilities mapped as
// building outlines or site relations are not missed.
var healthcareSelectors = []string{
	`["amenity"="hospital"]`,
	`["amenity"="clinic"]`,
	`["amenity"="pharmacy"]`,
	`["amenity"="doctors"]`,
	`["healthcare"]`,
}

var elementKinds = []string{"node", "way", "relation"}

// BuildQuery constructs an Overpass QL query selecting healthcare POIs within
// radiusMeters of the center. Pure construction; the fetch is a separate step.
func BuildQuery(lat, lon float64, radiusMeters int) (string, error) {
	if radiusMeters <= 0 {
		return "", apperrors.NewValidationError("radius must be a positive number of meters")
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return "", apperrors.NewValidationError("latitude and longitude must be finite numbers")
	}

	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, kind := range elementKinds {
		for _, selector := range healthcareSelectors {
			fmt.Fprintf(&b, "  %s%s(around:%d,%.6f,%.6f);\n", kind, selector, radiusMeters, lat, lon)
		}
	}
	b.WriteString(");\nout center;")
	return b.String(), nil
}
