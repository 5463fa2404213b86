package models

import (
	"time"
)

const (
	ChallengeStatusPending  = "pending"
	ChallengeStatusAccepted = "accepted"
	ChallengeStatusDeclined = "declined"
)

// Challenge is a pre-match invitation. It carries no scores and has no
// rating effect; an accepted challenge is simply an agreement to play, the
// result is reported separately.
type Challenge struct {
	ID               string     `gorm:"primaryKey;size:36" json:"id"`
	ChallengerHandle string     `gorm:"size:64;not null;index" json:"challenger_handle"`
	OpponentHandle   string     `gorm:"size:64;not null;index" json:"opponent_handle"`
	Sport            string     `gorm:"size:32;not null" json:"sport"`
	Status           string     `gorm:"size:16;not null;default:pending" json:"status"`
	ScheduledDate    *time.Time `json:"scheduled_date,omitempty"`
	ScheduledTime    *string    `gorm:"size:16" json:"scheduled_time,omitempty"`
	Place            *string    `gorm:"size:255" json:"place,omitempty"`
	Dare             *string    `gorm:"size:500" json:"dare,omitempty"`
	Message          string     `gorm:"size:500" json:"message"`
	CreatedAt        time.Time  `json:"created_at"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt       *time.Time `json:"declined_at,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// CreateChallengeRequest carries the scheduling metadata as explicit
// optional fields; absent means not scheduled, never a sentinel value.
type CreateChallengeRequest struct {
	OpponentHandle string     `json:"opponent_handle" binding:"required"`
	Sport          string     `json:"sport" binding:"required"`
	ScheduledDate  *time.Time `json:"scheduled_date,omitempty"`
	ScheduledTime  *string    `json:"scheduled_time,omitempty"`
	Place          *string    `json:"place,omitempty"`
	Dare           *string    `json:"dare,omitempty"`
}

type ChallengeListResponse struct {
	Incoming []Challenge `json:"incoming"`
	Outgoing []Challenge `json:"outgoing"`
}
