package services

import (
	"math"
	"math/rand"
	"sync"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/providers"
)

// SyntheticRatingProvider generates placeholder rating and review figures.
// The numbers carry no real signal; they exist so the response shape matches
// the frontend until a real ratings source is integrated. Deliberately kept
// behind providers.RatingProvider so the swap is a one-line wiring change.
type SyntheticRatingProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticRatingProvider creates a provider seeded from the given source
func NewSyntheticRatingProvider(seed int64) providers.RatingProvider {
	return &SyntheticRatingProvider{rng: rand.New(rand.NewSource(seed))}
}

// Rate returns a rating in [3.5, 5.0) and a review count in [10, 500)
func (p *SyntheticRatingProvider) Rate(_ *entities.Facility) (float64, int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	rating := 3.5 + p.rng.Float64()*1.5
	rating = math.Round(rating*10) / 10
	reviews := 10 + p.rng.Intn(490)
	return rating, reviews
}
