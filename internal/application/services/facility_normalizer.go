package services

import (
	"fmt"
	"strings"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/providers"
)

const (
	defaultFacilityName = "Healthcare Facility"
	addressUnavailable  = "Address not available"
	phoneUnavailable    = "Not available"
	unknownPlace        = "Unknown"
	maxServices         = 5
	minServices         = 2
)

// nameFallbacks is the priority order for resolving a facility name
var nameFallbacks = []string{"name", "name:en", "official_name"}

// typeRule maps a tag condition to a facility type. Rules are evaluated in
// order and the first match wins; keeping the precedence as data makes each
// row independently testable.
type typeRule struct {
	tag      string
	match    func(value string) bool
	facility entities.FacilityType
}

func tagEquals(want string) func(string) bool {
	return func(value string) bool { return value == want }
}

func tagContainsAny(wants ...string) func(string) bool {
	return func(value string) bool {
		for _, want := range wants {
			if strings.Contains(value, want) {
				return true
			}
		}
		return false
	}
}

var typeRules = []typeRule{
	{tag: "amenity", match: tagEquals("hospital"), facility: entities.FacilityTypeHospital},
	{tag: "healthcare", match: tagEquals("hospital"), facility: entities.FacilityTypeHospital},
	{tag: "amenity", match: tagEquals("pharmacy"), facility: entities.FacilityTypePharmacy},
	{tag: "healthcare", match: tagContainsAny("centre", "center"), facility: entities.FacilityTypeHealthCenter},
	{tag: "amenity", match: tagEquals("doctors"), facility: entities.FacilityTypeClinic},
	{tag: "amenity", match: tagEquals("clinic"), facility: entities.FacilityTypeClinic},
	{tag: "healthcare", match: tagContainsAny("clinic", "doctor"), facility: entities.FacilityTypeClinic},
}

// defaultServices backfills the service list when the source tags are sparse
var defaultServices = map[entities.FacilityType][]string{
	entities.FacilityTypeHospital:     {"General Medicine", "Emergency Care", "Laboratory"},
	entities.FacilityTypeClinic:       {"General Consultation", "Outpatient Care"},
	entities.FacilityTypePharmacy:     {"Prescription Dispensing", "Over-the-counter Medicine"},
	entities.FacilityTypeHealthCenter: {"Primary Care", "Maternal Health"},
}

// addressParts is the join order for assembling an address from components
var addressParts = []string{"addr:housenumber", "addr:street", "addr:suburb"}

// phoneFallbacks and websiteFallbacks are contact-field priority chains
var (
	phoneFallbacks   = []string{"phone", "contact:phone"}
	websiteFallbacks = []string{"website", "contact:website"}
)

// skipReason explains why a raw element was not ingested; it is logged as a
// warning, never surfaced as an error.
type skipReason string

const (
	skipNoCoordinates skipReason = "no resolvable coordinates"
	skipNoTags        skipReason = "no tags"
	skipBadName       skipReason = "name missing or unnamed"
	skipOutOfRadius   skipReason = "outside requested radius"
)

// normalizeElement projects one raw POI element into a Facility, or reports a
// skip. centerLat/centerLon is the search center and radiusKm the second,
// independent radius bound applied on the computed distance.
func normalizeElement(el providers.POIElement, centerLat, centerLon, radiusKm float64) (*entities.Facility, skipReason) {
	lat, lon, ok := el.Coordinates()
	if !ok {
		return nil, skipNoCoordinates
	}
	if len(el.Tags) == 0 {
		return nil, skipNoTags
	}

	name := resolveTag(el.Tags, nameFallbacks, defaultFacilityName)
	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) < 3 || strings.EqualFold(trimmedName, "unnamed") {
		return nil, skipBadName
	}

	distance := haversineKm(centerLat, centerLon, lat, lon)
	if distance > radiusKm {
		return nil, skipOutOfRadius
	}

	facilityType := classifyType(el.Tags)
	emergency := resolveEmergency(el.Tags, facilityType)

	return &entities.Facility{
		ID:                fmt.Sprintf("%s-%d", el.Type, el.ID),
		Name:              trimmedName,
		Type:              facilityType,
		Address:           assembleAddress(el.Tags),
		City:              firstNonEmpty(el.Tags["addr:city"], unknownPlace),
		Region:            firstNonEmpty(el.Tags["addr:region"], el.Tags["addr:state"], unknownPlace),
		DistanceKm:        distance,
		Coordinates:       entities.Location{Latitude: lat, Longitude: lon},
		Services:          resolveServices(el.Tags, facilityType),
		Phone:             resolveTag(el.Tags, phoneFallbacks, phoneUnavailable),
		Hours:             resolveHours(el.Tags, facilityType),
		Website:           resolveTag(el.Tags, websiteFallbacks, ""),
		EmergencyServices: emergency,
	}, ""
}

// classifyType evaluates the ordered type rules; unmatched tags default to clinic
func classifyType(tags map[string]string) entities.FacilityType {
	for _, rule := range typeRules {
		if value, ok := tags[rule.tag]; ok && rule.match(strings.ToLower(value)) {
			return rule.facility
		}
	}
	return entities.FacilityTypeClinic
}

func resolveServices(tags map[string]string, facilityType entities.FacilityType) []string {
	var services []string
	for _, raw := range strings.Split(tags["healthcare:speciality"], ";") {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		services = append(services, s)
		if len(services) == maxServices {
			break
		}
	}

	if len(services) < minServices {
		services = append(services, defaultServices[facilityType]...)
	}
	return services
}

func assembleAddress(tags map[string]string) string {
	if full := strings.TrimSpace(tags["addr:full"]); full != "" {
		return full
	}

	var parts []string
	for _, key := range addressParts {
		if v := strings.TrimSpace(tags[key]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return addressUnavailable
	}
	return strings.Join(parts, ", ")
}

// resolveHours defaults to "24/7" only for hospitals explicitly tagged as
// offering emergency care; the hospital-type emergency heuristic does not
// apply here.
func resolveHours(tags map[string]string, facilityType entities.FacilityType) string {
	if hours := strings.TrimSpace(tags["opening_hours"]); hours != "" {
		return hours
	}
	if facilityType == entities.FacilityTypeHospital && tags["emergency"] == "yes" {
		return "24/7"
	}
	return "Call for hours"
}

func resolveEmergency(tags map[string]string, facilityType entities.FacilityType) bool {
	switch tags["emergency"] {
	case "yes":
		return true
	case "no":
		return false
	}
	return facilityType == entities.FacilityTypeHospital
}

func resolveTag(tags map[string]string, keys []string, fallback string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(tags[key]); v != "" {
			return v
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
