package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
)

func facilityNamed(id, name string, distanceKm float64) *entities.Facility {
	return &entities.Facility{ID: id, Name: name, DistanceKm: distanceKm}
}

func TestDedupeFacilities_CollapsesNearDuplicates(t *testing.T) {
	input := []*entities.Facility{
		facilityNamed("node-1", "Ridge Hospital", 1.21),
		facilityNamed("way-2", " ridge hospital ", 1.22),
		facilityNamed("relation-3", "RIDGE HOSPITAL", 1.25),
	}

	result := dedupeFacilities(input)
	require.Len(t, result, 1)
	assert.Equal(t, "node-1", result[0].ID)
}

func TestDedupeFacilities_FirstSeenWins(t *testing.T) {
	input := []*entities.Facility{
		facilityNamed("way-2", "Ridge Hospital", 1.22),
		facilityNamed("node-1", "Ridge Hospital", 1.21),
	}

	result := dedupeFacilities(input)
	require.Len(t, result, 1)
	assert.Equal(t, "way-2", result[0].ID)
}

func TestDedupeFacilities_SameNameFarApartKept(t *testing.T) {
	input := []*entities.Facility{
		facilityNamed("node-1", "Community Clinic", 0.5),
		facilityNamed("node-2", "Community Clinic", 2.8),
	}

	assert.Len(t, dedupeFacilities(input), 2)
}

func TestDedupeFacilities_DifferentNamesNearbyKept(t *testing.T) {
	input := []*entities.Facility{
		facilityNamed("node-1", "Ridge Hospital", 1.21),
		facilityNamed("node-2", "Ridge Pharmacy", 1.22),
	}

	assert.Len(t, dedupeFacilities(input), 2)
}

func TestDedupeFacilities_EmptyInput(t *testing.T) {
	assert.Empty(t, dedupeFacilities(nil))
}
