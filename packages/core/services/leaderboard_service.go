package services

import (
	"context"
	"sort"

	"core/cache"
	"core/models"

	"gorm.io/gorm"
)

// LeaderboardService is pure read side: it never mutates ratings and is
// recomputed from current ratings on every cache miss.
type LeaderboardService struct {
	db    *gorm.DB
	cache cache.LeaderboardCache // may be nil
}

func NewLeaderboardService(db *gorm.DB, leaderboardCache cache.LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{
		db:    db,
		cache: leaderboardCache,
	}
}

// GetLeaderboard ranks every player for one sport, highest rating first.
// Players without a rating row for the sport are listed at the 1000 display
// default (NOT the 1200 mutation default; unplayed sports must not look like
// freshly seeded ones).
func (s *LeaderboardService) GetLeaderboard(sport string) ([]models.LeaderboardEntry, error) {
	if !models.IsValidSport(sport) {
		return nil, ErrInvalidSport
	}

	ctx := context.Background()
	if s.cache != nil {
		if entries, ok := s.cache.Get(ctx, sport); ok {
			return entries, nil
		}
	}

	var players []models.Player
	if err := s.db.Find(&players).Error; err != nil {
		return nil, err
	}

	var ratings []models.PlayerRating
	if err := s.db.Where("sport = ?", sport).Find(&ratings).Error; err != nil {
		return nil, err
	}

	ratingByHandle := make(map[string]int, len(ratings))
	for _, r := range ratings {
		ratingByHandle[r.PlayerHandle] = r.Rating
	}

	entries := make([]models.LeaderboardEntry, 0, len(players))
	for _, p := range players {
		rating, ok := ratingByHandle[p.Handle]
		if !ok {
			rating = models.DisplayDefaultRating
		}
		entries = append(entries, models.LeaderboardEntry{
			Handle:      p.Handle,
			DisplayName: p.DisplayName,
			Rating:      rating,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		return entries[i].Handle < entries[j].Handle
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if s.cache != nil {
		s.cache.Set(ctx, sport, entries)
	}

	return entries, nil
}
