package services

import (
	"log"
	"time"

	"core/models"

	"gorm.io/gorm"
)

// PendingMatchTTL is how long an unconfirmed report stays actionable before
// the nightly sweep removes it.
const PendingMatchTTL = 14 * 24 * time.Hour

// CleanupService expires stale pending matches. Stale reports are deleted,
// never auto-confirmed: confirmation is exclusively the opponent's act, and
// silence is not consent.
type CleanupService struct {
	db *gorm.DB
}

func NewCleanupService(db *gorm.DB) *CleanupService {
	return &CleanupService{
		db: db,
	}
}

// ExpirePendingMatches deletes every pending match older than the TTL and
// returns how many were removed.
func (s *CleanupService) ExpirePendingMatches() (int64, error) {
	cutoff := time.Now().Add(-PendingMatchTTL)

	res := s.db.Where("created_at < ?", cutoff).Delete(&models.PendingMatch{})
	if res.Error != nil {
		log.Printf("Error expiring pending matches: %v", res.Error)
		return 0, res.Error
	}

	if res.RowsAffected > 0 {
		log.Printf("Expired %d stale pending matches (older than %v)", res.RowsAffected, PendingMatchTTL)
	}

	return res.RowsAffected, nil
}

// GetExpiredMatchesCount returns how many pending matches are past the TTL.
func (s *CleanupService) GetExpiredMatchesCount() (int64, error) {
	cutoff := time.Now().Add(-PendingMatchTTL)

	var count int64
	res := s.db.Model(&models.PendingMatch{}).Where("created_at < ?", cutoff).Count(&count)
	if res.Error != nil {
		return 0, res.Error
	}

	return count, nil
}
