package providers

import "github.com/healthconnect/navigator-api/internal/domain/entities"

// RatingProvider supplies rating and review-count figures for a facility.
// The production implementation is a synthetic stand-in until a real ratings
// source is integrated; keeping it behind this interface means swapping it
// touches nothing else in the pipeline.
type RatingProvider interface {
	Rate(facility *entities.Facility) (rating float64, reviews int)
}
