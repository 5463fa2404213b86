package services

import (
	"errors"

	"core/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

// CreatePlayer sets up the competitive identity for a freshly registered
// user. Ratings are not seeded here; the confirmation workflow creates the
// per-sport rows on first use.
func (s *PlayerService) CreatePlayer(userID uint, handle, displayName string) (*models.Player, error) {
	player := &models.Player{
		Handle:      handle,
		UserID:      userID,
		DisplayName: displayName,
	}

	if err := s.db.Create(player).Error; err != nil {
		return nil, err
	}

	return player, nil
}

func (s *PlayerService) GetPlayerByHandle(handle string) (*models.Player, error) {
	var player models.Player

	if err := s.db.Preload("Ratings").Where("handle = ?", handle).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return &player, nil
}

// GetRatings returns the player's per-sport rating map; sports never played
// are simply absent.
func (s *PlayerService) GetRatings(handle string) (map[string]int, error) {
	var rows []models.PlayerRating
	if err := s.db.Where("player_handle = ?", handle).Find(&rows).Error; err != nil {
		return nil, err
	}

	ratings := make(map[string]int, len(rows))
	for _, row := range rows {
		ratings[row.Sport] = row.Rating
	}
	return ratings, nil
}

func (s *PlayerService) GetRatingHistory(handle string) ([]models.RatingHistory, error) {
	var history []models.RatingHistory

	if err := s.db.Where("player_handle = ?", handle).
		Order("id ASC").
		Find(&history).Error; err != nil {
		return nil, err
	}

	return history, nil
}
