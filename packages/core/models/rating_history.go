package models

import (
	"time"
)

// RatingHistory is the audit trail of the rating engine: one row per player
// per confirmed match, written in the same transaction as the rating update.
type RatingHistory struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerHandle   string    `gorm:"size:64;not null;index" json:"player_handle"`
	MatchID        string    `gorm:"size:36;not null;index" json:"match_id"`
	Sport          string    `gorm:"size:32;not null" json:"sport"`
	RatingBefore   int       `gorm:"not null" json:"rating_before"`
	RatingAfter    int       `gorm:"not null" json:"rating_after"`
	RatingChange   int       `gorm:"not null" json:"rating_change"`
	OpponentHandle string    `gorm:"size:64;not null" json:"opponent_handle"`
	CreatedAt      time.Time `json:"created_at"`
}

func (RatingHistory) TableName() string {
	return "rating_history"
}
