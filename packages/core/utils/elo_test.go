package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRatingsTieNeverMoves(t *testing.T) {
	cases := []struct {
		name   string
		ra, rb int
		score  int
	}{
		{"zeroZero", 1200, 1200, 0},
		{"equalNonZero", 1500, 900, 11},
		{"equalHighGap", 100, 2400, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			newA, newB, err := UpdateRatings(tc.ra, tc.rb, tc.score, tc.score, DefaultKFactor)
			require.NoError(t, err)
			assert.Equal(t, tc.ra, newA)
			assert.Equal(t, tc.rb, newB)
		})
	}
}

func TestUpdateRatingsReferenceScenario(t *testing.T) {
	// Two fresh 1200 players, 11-5: actual = 0.6875, expected = 0.5,
	// delta = round(32 * 0.1875) = 6.
	newA, newB, err := UpdateRatings(1200, 1200, 11, 5, 32)
	require.NoError(t, err)
	assert.Equal(t, 1206, newA)
	assert.Equal(t, 1194, newB)
}

func TestUpdateRatingsWinnerGainsAgainstEqualOrHigher(t *testing.T) {
	cases := []struct {
		name   string
		ra, rb int
	}{
		{"equal", 1200, 1200},
		{"underdog", 1000, 1400},
		{"bigUnderdog", 800, 2000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			newA, newB, err := UpdateRatings(tc.ra, tc.rb, 21, 10, DefaultKFactor)
			require.NoError(t, err)
			assert.Greater(t, newA, tc.ra, "winner at or below opponent must gain")
			assert.LessOrEqual(t, newB, tc.rb)
		})
	}
}

func TestUpdateRatingsChangeBoundedByK(t *testing.T) {
	for _, k := range []int{16, 32, 64} {
		newA, newB, err := UpdateRatings(600, 2200, 11, 0, k)
		require.NoError(t, err)
		assert.LessOrEqual(t, abs(newA-600), k)
		assert.LessOrEqual(t, abs(newB-2200), k)
	}
}

func TestUpdateRatingsSymmetry(t *testing.T) {
	cases := [][4]int{
		{1200, 1200, 11, 5},
		{1340, 1180, 7, 21},
		{1000, 1750, 10, 9},
	}

	for _, c := range cases {
		a1, b1, err := UpdateRatings(c[0], c[1], c[2], c[3], DefaultKFactor)
		require.NoError(t, err)
		b2, a2, err := UpdateRatings(c[1], c[0], c[3], c[2], DefaultKFactor)
		require.NoError(t, err)
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
	}
}

func TestUpdateRatingsConservationDrift(t *testing.T) {
	// Each side rounds independently, so the pair sum may move by at most
	// one point. Pin that down rather than silently correcting it.
	for _, c := range [][4]int{
		{1200, 1200, 11, 5},
		{1203, 1197, 3, 2},
		{1501, 1499, 13, 11},
		{1000, 1001, 5, 4},
	} {
		newA, newB, err := UpdateRatings(c[0], c[1], c[2], c[3], DefaultKFactor)
		require.NoError(t, err)
		drift := (newA + newB) - (c[0] + c[1])
		assert.LessOrEqual(t, abs(drift), 1, "sum drift beyond rounding for %v", c)
	}
}

func TestUpdateRatingsFailsClosed(t *testing.T) {
	cases := []struct {
		name              string
		ra, rb, sa, sb, k int
	}{
		{"negativeScoreA", 1200, 1200, -1, 5, 32},
		{"negativeScoreB", 1200, 1200, 5, -1, 32},
		{"zeroK", 1200, 1200, 11, 5, 0},
		{"negativeK", 1200, 1200, 11, 5, -32},
		{"ratingOverflow", 1 << 40, 1200, 11, 5, 32},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := UpdateRatings(tc.ra, tc.rb, tc.sa, tc.sb, tc.k)
			assert.ErrorIs(t, err, ErrInvalidRatingInput)
		})
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
