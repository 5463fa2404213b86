package utils

import (
	"errors"
	"math"
)

// DefaultKFactor is the maximum number of rating points exchanged per match.
const DefaultKFactor = 32

// ErrInvalidRatingInput is returned when the rating engine receives
// malformed input. The engine fails closed: no rating is ever mutated on
// this path.
var ErrInvalidRatingInput = errors.New("invalid rating input")

// UpdateRatings computes the new rating pair for a confirmed result using a
// margin-of-victory ELO: the actual score is the fraction of total points
// taken, not just win/lose. Ties never move ratings, 0-0 included.
//
// Ratings must fit in a signed 32-bit integer, scores must be non-negative
// and k must be positive. Each side is rounded to the nearest integer
// independently (math.Round, half away from zero), so the pair sum may
// drift by one point per match; that drift is accepted, not corrected.
func UpdateRatings(ratingA, ratingB, scoreA, scoreB, k int) (int, int, error) {
	if scoreA < 0 || scoreB < 0 || k <= 0 {
		return 0, 0, ErrInvalidRatingInput
	}
	if ratingA > math.MaxInt32 || ratingA < math.MinInt32 ||
		ratingB > math.MaxInt32 || ratingB < math.MinInt32 {
		return 0, 0, ErrInvalidRatingInput
	}

	if scoreA == scoreB {
		return ratingA, ratingB, nil
	}

	total := scoreA + scoreB
	if total == 0 {
		// Unreachable behind the tie rule, kept as a division guard.
		return ratingA, ratingB, nil
	}

	actualA := float64(scoreA) / float64(total)
	expectedA := 1.0 / (1.0 + math.Pow(10, float64(ratingB-ratingA)/400.0))

	newA := int(math.Round(float64(ratingA) + float64(k)*(actualA-expectedA)))
	newB := int(math.Round(float64(ratingB) + float64(k)*((1-actualA)-(1-expectedA))))

	return newA, newB, nil
}
