package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/providers"
	"github.com/healthconnect/navigator-api/internal/infrastructure/observability"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

const (
	defaultSearchLimit = 100
	maxSearchLimit     = 200
)

// SearchRequest describes one nearby-facility search
type SearchRequest struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	Limit        int
}

// FacilitySearchService runs the facility discovery pipeline: spatial query →
// normalize → dedupe → rank/filter. Each search is stateless and independent;
// facilities are transient projections of the POI dataset's current state.
type FacilitySearchService struct {
	poiSource    providers.POISource
	ratings      providers.RatingProvider
	metrics      *observability.Metrics
	defaultLimit int
}

// NewFacilitySearchService creates a new facility search service.
// defaultLimit applies when a request carries no limit; zero or out-of-range
// values fall back to the built-in default.
func NewFacilitySearchService(poiSource providers.POISource, ratings providers.RatingProvider, metrics *observability.Metrics, defaultLimit int) *FacilitySearchService {
	if defaultLimit <= 0 || defaultLimit > maxSearchLimit {
		defaultLimit = defaultSearchLimit
	}
	return &FacilitySearchService{
		poiSource:    poiSource,
		ratings:      ratings,
		metrics:      metrics,
		defaultLimit: defaultLimit,
	}
}

// Search finds healthcare facilities near a point. Validation failures are
// reported before any external call; a POI source failure fails the whole
// search. An empty result after filtering is a success, with a user-facing
// message suggesting a larger radius.
func (s *FacilitySearchService) Search(ctx context.Context, req SearchRequest) (*entities.FacilitySearchResult, error) {
	if err := validateSearchRequest(req); err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(ctx)
	if !withinGhana(req.Latitude, req.Longitude) {
		logger.Warn().
			Float64("lat", req.Latitude).
			Float64("lng", req.Longitude).
			Msg("search center outside expected coverage area")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	radiusKm := float64(req.RadiusMeters) / 1000.0

	fetchStart := time.Now()
	elements, err := s.poiSource.FetchHealthcarePOIs(ctx, req.Latitude, req.Longitude, req.RadiusMeters)
	if s.metrics != nil {
		observability.RecordPOIFetch(ctx, s.metrics, time.Since(fetchStart), err == nil)
	}
	if err != nil {
		return nil, err
	}

	facilities := make([]*entities.Facility, 0, len(elements))
	for _, el := range elements {
		facility, skip := normalizeElement(el, req.Latitude, req.Longitude, radiusKm)
		if skip != "" {
			logger.Warn().
				Str("element", fmt.Sprintf("%s/%d", el.Type, el.ID)).
				Str("reason", string(skip)).
				Msg("skipping POI record")
			continue
		}
		facilities = append(facilities, facility)
	}

	facilities = dedupeFacilities(facilities)

	sort.Slice(facilities, func(i, j int) bool {
		return facilities[i].DistanceKm < facilities[j].DistanceKm
	})
	if len(facilities) > limit {
		facilities = facilities[:limit]
	}

	if s.ratings != nil {
		for _, facility := range facilities {
			facility.Rating, facility.Reviews = s.ratings.Rate(facility)
		}
	}

	result := &entities.FacilitySearchResult{
		Facilities: facilities,
		Total:      len(facilities),
		Location:   entities.LatLng{Lat: req.Latitude, Lng: req.Longitude},
		RadiusKm:   radiusKm,
	}
	if len(facilities) == 0 {
		result.Message = fmt.Sprintf("No facilities found within %.1f km. Try expanding your search radius.", radiusKm)
	}

	return result, nil
}

func validateSearchRequest(req SearchRequest) error {
	if math.IsNaN(req.Latitude) || math.IsInf(req.Latitude, 0) ||
		math.IsNaN(req.Longitude) || math.IsInf(req.Longitude, 0) {
		return apperrors.NewValidationError("latitude and longitude must be finite numbers")
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return apperrors.NewValidationError("latitude must be between -90 and 90")
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return apperrors.NewValidationError("longitude must be between -180 and 180")
	}
	if req.RadiusMeters <= 0 {
		return apperrors.NewValidationError("radius must be a positive number of meters")
	}
	return nil
}
