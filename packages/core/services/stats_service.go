package services

import (
	"math"
	"time"

	"core/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalPlayers int64
	var totalMatches int64
	var pendingMatches int64
	var matchesLast7Days int64
	var matchesPrevious7Days int64

	if err := s.db.Model(&models.Player{}).Count(&totalPlayers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.CompletedMatch{}).Count(&totalMatches).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.PendingMatch{}).Count(&pendingMatches).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.CompletedMatch{}).
		Where("confirmed_at >= ?", last7DaysStart).
		Count(&matchesLast7Days).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.CompletedMatch{}).
		Where("confirmed_at >= ? AND confirmed_at < ?", previous7DaysStart, last7DaysStart).
		Count(&matchesPrevious7Days).Error; err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalPlayers:         totalPlayers,
		TotalMatches:         totalMatches,
		PendingMatches:       pendingMatches,
		MatchesLast7Days:     matchesLast7Days,
		MatchesPrevious7Days: matchesPrevious7Days,
	}, nil
}

// GetPlayerStats derives a player's profile numbers by scanning completed
// matches; nothing here is cached or stored.
func (s *StatsService) GetPlayerStats(handle string) (*models.PlayerStats, error) {
	var player models.Player
	if err := s.db.Where("handle = ?", handle).First(&player).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	var matches []models.CompletedMatch
	if err := s.db.Where("reporter_handle = ? OR opponent_handle = ?", handle, handle).
		Find(&matches).Error; err != nil {
		return nil, err
	}

	wins := 0
	for _, m := range matches {
		if m.ReporterHandle == handle && m.ReporterScore > m.OpponentScore {
			wins++
		} else if m.OpponentHandle == handle && m.OpponentScore > m.ReporterScore {
			wins++
		}
	}

	total := len(matches)
	winRate := 0
	if total > 0 {
		winRate = int(math.Round(float64(wins) / float64(total) * 100))
	}

	var ratingRows []models.PlayerRating
	if err := s.db.Where("player_handle = ?", handle).Find(&ratingRows).Error; err != nil {
		return nil, err
	}

	ratings := make(map[string]int, len(ratingRows))
	// Best sport means strictly above the 1000 display baseline; a player
	// whose every rating sits at or below it has no best sport.
	bestSport := "None"
	highest := models.DisplayDefaultRating
	for _, row := range ratingRows {
		ratings[row.Sport] = row.Rating
		if row.Rating > highest {
			highest = row.Rating
			bestSport = row.Sport
		}
	}

	return &models.PlayerStats{
		Handle:       player.Handle,
		DisplayName:  player.DisplayName,
		TotalMatches: total,
		Wins:         wins,
		Losses:       total - wins,
		WinRate:      winRate,
		BestSport:    bestSport,
		Ratings:      ratings,
	}, nil
}
