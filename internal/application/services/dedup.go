package services

import (
	"strings"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
)

// duplicateDistanceKm is the distance delta under which two same-named
// facilities are treated as one physical place. The same facility commonly
// appears as a node, a way, and a relation with near-identical coordinates.
const duplicateDistanceKm = 0.05

// dedupeFacilities collapses near-duplicates, keeping the first occurrence in
// input order. Two facilities are duplicates when their names match after
// trim+case-fold and their distances from the search center differ by less
// than 50 m. Pairwise O(n²) over result sets capped at low hundreds; swap in
// a name-bucketed index here if that cap ever grows.
func dedupeFacilities(facilities []*entities.Facility) []*entities.Facility {
	result := make([]*entities.Facility, 0, len(facilities))

	for _, candidate := range facilities {
		duplicate := false
		for _, kept := range result {
			if isNearDuplicate(kept, candidate) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			result = append(result, candidate)
		}
	}

	return result
}

func isNearDuplicate(a, b *entities.Facility) bool {
	if !strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name)) {
		return false
	}
	delta := a.DistanceKm - b.DistanceKm
	if delta < 0 {
		delta = -delta
	}
	return delta < duplicateDistanceKm
}
