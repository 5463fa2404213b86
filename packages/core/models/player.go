package models

import (
	"time"
)

const (
	// MutationDefaultRating seeds a (player, sport) pair the first time a
	// confirmation touches it.
	MutationDefaultRating = 1200

	// DisplayDefaultRating is what the read side shows for players who never
	// played a sport. Legacy profiles predate the 1200 seed, so the two
	// defaults intentionally differ; only the confirmation path may use 1200.
	DisplayDefaultRating = 1000
)

// Player is the competitive identity behind an account. The handle is the
// institutional identifier (email localpart) and never changes.
type Player struct {
	Handle      string    `gorm:"primaryKey;size:64" json:"handle"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string    `gorm:"size:255;not null" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Ratings []PlayerRating `gorm:"foreignKey:PlayerHandle;references:Handle" json:"ratings,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

// PlayerRating holds the current rating of one player for one sport.
// Rows are created lazily by the confirmation workflow.
type PlayerRating struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerHandle string    `gorm:"size:64;not null;uniqueIndex:idx_player_sport" json:"player_handle"`
	Sport        string    `gorm:"size:32;not null;uniqueIndex:idx_player_sport" json:"sport"`
	Rating       int       `gorm:"not null" json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (PlayerRating) TableName() string {
	return "player_ratings"
}
