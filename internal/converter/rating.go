package converter

import (
	"math"
	"math/rand/v2"

	"doctor-search/internal/domain/entity"

	"github.com/cespare/xxhash/v2"
)

const (
	RatingModeSeeded  = "seeded"
	RatingModeUnknown = "unknown"

	minSeededRating  = 4.0
	minSeededReviews = 50
	seededReviewSpan = 500
)

// RatingSource fills in ratings, which the upstream feed does not carry.
// Swapping the source never changes the shape of a normalized doctor.
type RatingSource interface {
	Rate(raw entity.RawDoctor) entity.Rating
}

// SeededRatingSource gives each doctor a placeholder rating in [4.0, 5.0] and
// between 50 and 549 reviews. Values depend only on the seed and the doctor id,
// so they are stable across reloads and feed order.
type SeededRatingSource struct {
	Seed uint64
}

func (s SeededRatingSource) Rate(raw entity.RawDoctor) entity.Rating {
	r := rand.New(rand.NewPCG(s.Seed, xxhash.Sum64String(raw.ID+"\x00"+raw.Name)))

	return entity.Rating{
		Score:     math.Round((minSeededRating+r.Float64())*10) / 10,
		Reviews:   minSeededReviews + r.IntN(seededReviewSpan),
		Available: true,
	}
}

// UnknownRatingSource reports every rating as unavailable.
type UnknownRatingSource struct{}

func (UnknownRatingSource) Rate(entity.RawDoctor) entity.Rating {
	return entity.Rating{}
}

// NewRatingSource maps a config mode to a source. Unrecognized modes fall back
// to the seeded placeholder.
func NewRatingSource(mode string, seed uint64) RatingSource {
	if mode == RatingModeUnknown {
		return UnknownRatingSource{}
	}
	return SeededRatingSource{Seed: seed}
}
