package models

import (
	"time"
)

// PendingMatch is a reported result waiting for the opponent's confirmation.
// A match id lives in exactly one of pending_matches or completed_matches;
// confirmation moves the row, it never copies it.
type PendingMatch struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Sport          string    `gorm:"size:32;not null" json:"sport"`
	ReporterHandle string    `gorm:"size:64;not null;index" json:"reporter_handle"`
	ReporterScore  int       `gorm:"not null" json:"reporter_score"`
	OpponentHandle string    `gorm:"size:64;not null;index" json:"opponent_handle"`
	OpponentScore  int       `gorm:"not null" json:"opponent_score"`
	Confirmed      bool      `gorm:"not null;default:false" json:"confirmed"`
	CreatedAt      time.Time `json:"created_at"`
}

func (PendingMatch) TableName() string {
	return "pending_matches"
}

// CompletedMatch is the immutable authoritative record of a confirmed match.
type CompletedMatch struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Sport          string    `gorm:"size:32;not null" json:"sport"`
	ReporterHandle string    `gorm:"size:64;not null;index" json:"reporter_handle"`
	ReporterScore  int       `gorm:"not null" json:"reporter_score"`
	OpponentHandle string    `gorm:"size:64;not null;index" json:"opponent_handle"`
	OpponentScore  int       `gorm:"not null" json:"opponent_score"`
	Confirmed      bool      `gorm:"not null;default:true" json:"confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}

func (CompletedMatch) TableName() string {
	return "completed_matches"
}

// ReportMatchRequest is the payload for reporting a played match. Scores are
// pointers so a reported 0 still passes the required binding.
type ReportMatchRequest struct {
	Sport          string `json:"sport" binding:"required"`
	OpponentHandle string `json:"opponent_handle" binding:"required"`
	ReporterScore  *int   `json:"reporter_score" binding:"required,gte=0"`
	OpponentScore  *int   `json:"opponent_score" binding:"required,gte=0"`
}

type PendingMatchesResponse struct {
	Incoming []PendingMatch `json:"incoming"`
	Outgoing []PendingMatch `json:"outgoing"`
}

type PaginatedMatchResponse struct {
	Data       []CompletedMatch `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}
